package assist

import (
	"context"
	"encoding/json"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// ToolSpec describes a tool exposed to the reasoning service. Parameters is a
// JSON Schema document.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// RawToolCall is a tool invocation as emitted by the reasoning service,
// arguments still unparsed.
type RawToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Completion is one reasoning-service turn: plain content, tool calls, or both.
type Completion struct {
	Content   string
	ToolCalls []RawToolCall
}

// Completer is the external reasoning service.
type Completer interface {
	Complete(ctx context.Context, messages []Message, tools []ToolSpec) (Completion, error)
}

// CatalogFinder resolves category and brand keywords to candidates.
type CatalogFinder interface {
	FindCategories(ctx context.Context, keyword string) ([]domain.CategoryCandidate, error)
	FindBrands(ctx context.Context, keyword string) ([]domain.Brand, error)
}

// ItemEncoder vectorizes item attributes.
type ItemEncoder interface {
	EncodeItem(ctx context.Context, attrs domain.ItemAttributes) domain.Encoding
}

// VectorReader reads the full vector corpus.
type VectorReader interface {
	GetAll(ctx context.Context) ([]domain.ItemVectorRecord, error)
}

// ItemReader hydrates items by id, preserving input order.
type ItemReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Item, error)
}
