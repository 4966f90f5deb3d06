package chi

import (
	"context"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/usecase/assist"
)

// Searcher serves free-text search.
type Searcher interface {
	Query(ctx context.Context, text string) ([]domain.Item, error)
}

// Recommender serves similar-item recommendation.
type Recommender interface {
	ForItem(ctx context.Context, itemID string) ([]domain.Item, error)
}

// Assister runs the conversational agent.
type Assister interface {
	Run(ctx context.Context, userMessage string, history []assist.Message) assist.Outcome
}
