package item

import (
	"strconv"
	"time"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// buildHashFields converts a domain Item into a flat map[string]string for HSET.
func buildHashFields(it domain.Item) map[string]string {
	m := map[string]string{
		"seller_id":   it.SellerID,
		"title":       it.Title,
		"description": it.Description,
		"price":       strconv.FormatFloat(it.Price, 'f', -1, 64),
		"status":      it.Status,
		"created_at":  it.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":  it.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if it.CategoryID != 0 {
		m["category_id"] = strconv.FormatInt(it.CategoryID, 10)
	}
	if it.BrandID != 0 {
		m["brand_id"] = strconv.FormatInt(it.BrandID, 10)
	}
	if it.ConditionID != 0 {
		m["condition_id"] = strconv.FormatInt(it.ConditionID, 10)
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Item.
func parseHashFields(id string, m map[string]string) domain.Item {
	it := domain.Item{
		ID:          id,
		SellerID:    m["seller_id"],
		Title:       m["title"],
		Description: m["description"],
		Status:      m["status"],
	}
	it.Price, _ = strconv.ParseFloat(m["price"], 64)
	it.CategoryID, _ = strconv.ParseInt(m["category_id"], 10, 64)
	it.BrandID, _ = strconv.ParseInt(m["brand_id"], 10, 64)
	it.ConditionID, _ = strconv.ParseInt(m["condition_id"], 10, 64)
	it.CreatedAt, _ = time.Parse(time.RFC3339Nano, m["created_at"])
	it.UpdatedAt, _ = time.Parse(time.RFC3339Nano, m["updated_at"])
	return it
}
