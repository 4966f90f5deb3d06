package recommend

import (
	"context"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// VectorStore reads vectors for the seed item and the full corpus.
type VectorStore interface {
	Get(ctx context.Context, itemID string) (domain.ItemVectorRecord, error)
	GetAll(ctx context.Context) ([]domain.ItemVectorRecord, error)
}

// ItemReader hydrates items by id, preserving input order.
type ItemReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Item, error)
}
