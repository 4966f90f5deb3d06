// Package search implements free-text item search: encode the query, scan
// the vector corpus, hydrate the top hits in rank order.
package search

import (
	"context"
	"fmt"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/ranker"
)

const defaultTopK = 20

// Service handles free-text query search.
type Service struct {
	vectors VectorReader
	items   ItemReader
	encoder QueryEncoder
	topK    int
}

// New creates a search service.
func New(vectors VectorReader, items ItemReader, encoder QueryEncoder) *Service {
	return &Service{vectors: vectors, items: items, encoder: encoder, topK: defaultTopK}
}

// WithTopK overrides the result cap.
func (s *Service) WithTopK(topK int) *Service {
	if topK > 0 {
		s.topK = topK
	}
	return s
}

// Query returns up to topK items ranked by similarity to the query text.
// An unavailable encoding or an empty corpus yields an empty result, not an
// error: degraded search must not fail the request.
func (s *Service) Query(ctx context.Context, text string) ([]domain.Item, error) {
	enc := s.encoder.EncodeQuery(ctx, text)
	if !enc.Available() {
		return nil, nil
	}

	corpus, err := s.vectors.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vector corpus: %w", err)
	}

	ids := ranker.Rank(enc.Vector(), corpus, s.topK)
	if len(ids) == 0 {
		return nil, nil
	}

	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate items: %w", err)
	}
	return items, nil
}
