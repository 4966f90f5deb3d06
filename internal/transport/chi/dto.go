package chi

import (
	"encoding/json"
	"net/http"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/usecase/assist"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeInternal     = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ItemResponse is the JSON shape of one catalog item in API responses.
type ItemResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id,omitempty"`
	BrandID     int64   `json:"brand_id,omitempty"`
	ConditionID int64   `json:"condition_id,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// SearchResponse is the body of GET /search and GET /recommend.
type SearchResponse struct {
	Items []ItemResponse `json:"items"`
}

// AssistRequest is the body of POST /assist.
type AssistRequest struct {
	Message string           `json:"message"`
	History []assist.Message `json:"history,omitempty"`
}

// AssistResponse is the body of POST /assist.
type AssistResponse struct {
	Reply   string           `json:"reply"`
	History []assist.Message `json:"history"`
	Items   []ItemResponse   `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func itemToResponse(it domain.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Price:       it.Price,
		CategoryID:  it.CategoryID,
		BrandID:     it.BrandID,
		ConditionID: it.ConditionID,
		Status:      it.Status,
	}
}

func itemsToResponse(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = itemToResponse(it)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
