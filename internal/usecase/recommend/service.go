// Package recommend implements similar-item recommendation seeded by an
// existing catalog item.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/ranker"
)

const defaultLimit = 3

// Service recommends items similar to a seed item.
type Service struct {
	vectors VectorStore
	items   ItemReader
	limit   int
}

// New creates a recommendation service.
func New(vectors VectorStore, items ItemReader) *Service {
	return &Service{vectors: vectors, items: items, limit: defaultLimit}
}

// WithLimit overrides the result cap.
func (s *Service) WithLimit(limit int) *Service {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// ForItem returns up to limit items most similar to the seed item. The seed
// itself is never included. A seed without a stored vector yields an empty
// result, not an error.
func (s *Service) ForItem(ctx context.Context, itemID string) ([]domain.Item, error) {
	seed, err := s.vectors.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrVectorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load seed vector: %w", err)
	}

	corpus, err := s.vectors.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vector corpus: %w", err)
	}

	// The seed is excluded before ranking so it cannot occupy a result slot.
	candidates := make([]domain.ItemVectorRecord, 0, len(corpus))
	for _, rec := range corpus {
		if rec.ItemID == itemID {
			continue
		}
		candidates = append(candidates, rec)
	}

	ids := ranker.Rank(seed.Embedding, candidates, s.limit)
	if len(ids) == 0 {
		return nil, nil
	}

	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate items: %w", err)
	}
	return items, nil
}
