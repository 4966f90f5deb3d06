package domain

import "time"

// Item is a catalog listing as stored by the CRUD layer.
type Item struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Price       float64
	CategoryID  int64
	BrandID     int64
	ConditionID int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemAttributes are the semantically relevant fields the encoder consumes.
// Nil categorical ids are coerced to the "0" sentinel before the label lookup.
type ItemAttributes struct {
	Title       string
	Price       float64
	CategoryID  *int64
	BrandID     *int64
	ConditionID *int64
}

// AttributesOf extracts encoder inputs from a stored item.
// A zero id means "unset" in storage and maps to nil here.
func AttributesOf(item Item) ItemAttributes {
	attrs := ItemAttributes{
		Title: item.Title,
		Price: item.Price,
	}
	if item.CategoryID != 0 {
		attrs.CategoryID = &item.CategoryID
	}
	if item.BrandID != 0 {
		attrs.BrandID = &item.BrandID
	}
	if item.ConditionID != 0 {
		attrs.ConditionID = &item.ConditionID
	}
	return attrs
}

// ItemVectorRecord pairs an item id with its embedding. At most one record
// exists per item; the record is deleted together with the item.
type ItemVectorRecord struct {
	ItemID    string
	Embedding []float32
}
