// Package chi exposes the semantic search API over HTTP.
package chi

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/soko-cloud/semsearch/internal/logger"
	healthuc "github.com/soko-cloud/semsearch/internal/usecase/health"
)

const (
	minQueryLen = 1
	maxQueryLen = 100
)

// Server wires the usecase services to HTTP handlers. Handlers log through
// the request-scoped logger placed in the context by the middleware chain.
type Server struct {
	search    Searcher
	recommend Recommender
	assist    Assister
	health    *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, recommend Recommender, assist Assister, health *healthuc.Service) *Server {
	return &Server{
		search:    search,
		recommend: recommend,
		assist:    assist,
		health:    health,
	}
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.handleSearch)
	r.Get("/recommend", s.handleRecommend)
	r.Post("/assist", s.handleAssist)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// handleSearch handles GET /search?q=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	// Length limits count characters, not bytes, so multibyte queries are
	// not cut short.
	if n := utf8.RuneCountInString(q); n < minQueryLen || n > maxQueryLen {
		writeError(w, http.StatusBadRequest, codeBadRequest, "q must be between 1 and 100 characters")
		return
	}

	items, err := s.search.Query(r.Context(), q)
	if err != nil {
		logger.FromContext(r.Context()).Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Items: itemsToResponse(items)})
}

// handleRecommend handles GET /recommend?item_id=. An unknown item id is an
// empty result, not a 404: the seed may simply have no vector yet.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("item_id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "item_id is required")
		return
	}

	items, err := s.recommend.ForItem(r.Context(), itemID)
	if err != nil {
		logger.FromContext(r.Context()).Error("recommend failed", zap.String("item_id", itemID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "recommend failed")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Items: itemsToResponse(items)})
}

// handleAssist handles POST /assist. Agent failures never surface as 5xx:
// the orchestrator degrades to a fallback reply and we return it with 200.
func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	var req AssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "message is required")
		return
	}

	out := s.assist.Run(r.Context(), req.Message, req.History)

	writeJSON(w, http.StatusOK, AssistResponse{
		Reply:   out.Reply,
		History: out.History,
		Items:   itemsToResponse(out.Items),
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}
