package search

import (
	"context"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// QueryEncoder vectorizes free text.
type QueryEncoder interface {
	EncodeQuery(ctx context.Context, text string) domain.Encoding
}

// VectorReader reads the full vector corpus.
type VectorReader interface {
	GetAll(ctx context.Context) ([]domain.ItemVectorRecord, error)
}

// ItemReader hydrates items by id, preserving input order.
type ItemReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Item, error)
}
