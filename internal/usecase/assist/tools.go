package assist

import "encoding/json"

// Tool names the reasoning service may call.
const (
	toolFindCategory  = "find_category_id"
	toolFindBrand     = "find_brand_id"
	toolSearchSimilar = "search_similar_items"
)

var findCategorySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"keyword": {
			"type": "string",
			"description": "Category keyword to look up, e.g. a product type"
		}
	},
	"required": ["keyword"]
}`)

var findBrandSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"keyword": {
			"type": "string",
			"description": "Brand name or fragment to look up"
		}
	},
	"required": ["keyword"]
}`)

var searchSimilarSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"category_id": {
			"type": "integer",
			"description": "Category id resolved via find_category_id"
		},
		"name": {
			"type": "string",
			"description": "Item name or short description to match against"
		},
		"price": {
			"type": "number",
			"description": "Approximate price; 0 when unknown"
		},
		"condition_id": {
			"type": "integer",
			"description": "Item condition id; 1 (new) when unknown"
		}
	},
	"required": ["category_id", "name"]
}`)

// toolSpecs returns the fixed tool surface exposed to the reasoning service.
func toolSpecs() []ToolSpec {
	return []ToolSpec{
		{
			Name:        toolFindCategory,
			Description: "Resolve a category keyword to candidate category ids with their hierarchical paths.",
			Parameters:  findCategorySchema,
		},
		{
			Name:        toolFindBrand,
			Description: "Resolve a brand keyword to candidate brand ids, best matches first.",
			Parameters:  findBrandSchema,
		},
		{
			Name:        toolSearchSimilar,
			Description: "Find catalog items semantically similar to the described item.",
			Parameters:  searchSimilarSchema,
		},
	}
}
