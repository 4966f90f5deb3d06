package semsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soko-cloud/semsearch/internal/db"
	dbRedis "github.com/soko-cloud/semsearch/internal/db/redis"
	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/encoder"
	itemrepo "github.com/soko-cloud/semsearch/internal/repository/item"
	vectorrepo "github.com/soko-cloud/semsearch/internal/repository/vector"
	recommenduc "github.com/soko-cloud/semsearch/internal/usecase/recommend"
	searchuc "github.com/soko-cloud/semsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "semsearch:"
)

// Item is a catalog listing returned by search and recommendation.
type Item struct {
	ID          string
	Title       string
	Description string
	Price       float64
	CategoryID  int64
	BrandID     int64
	ConditionID int64
	Status      string
}

// Internal interfaces for test substitution.
type searchUseCase interface {
	Query(ctx context.Context, text string) ([]domain.Item, error)
}

type recommendUseCase interface {
	ForItem(ctx context.Context, itemID string) ([]domain.Item, error)
}

// Client is the semsearch SDK entry point.
type Client struct {
	store        db.Store
	searchSvc    searchUseCase
	recommendSvc recommendUseCase
}

// New creates a semsearch Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("semsearch: database address required (use WithRedis)")
	}
	if cfg.artifactPath == "" {
		return nil, errors.New("semsearch: model artifact required (use WithModelArtifact)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("semsearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("semsearch: database not ready: %w", err)
	}

	artifact, err := encoder.LoadArtifact(cfg.artifactPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("semsearch: load artifact: %w", err)
	}
	pool := encoder.NewPool(encoder.NewModel(artifact), cfg.poolSize, cfg.logger)

	items := itemrepo.New(store).WithPrefix(cfg.keyPrefix)
	vectors := vectorrepo.New(store).WithPrefix(cfg.keyPrefix)

	searchSvc := searchuc.New(vectors, items, pool)
	if cfg.topK > 0 {
		searchSvc = searchSvc.WithTopK(cfg.topK)
	}
	recommendSvc := recommenduc.New(vectors, items)

	return &Client{
		store:        store,
		searchSvc:    searchSvc,
		recommendSvc: recommendSvc,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns up to topK items ranked by similarity to the query text.
// A degraded encoder yields an empty result, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	found, err := c.searchSvc.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return itemsFromDomain(found), nil
}

// Recommend returns up to 3 items similar to the seed item, excluding the
// seed itself. An unknown item id yields an empty result.
func (c *Client) Recommend(ctx context.Context, itemID string) ([]Item, error) {
	found, err := c.recommendSvc.ForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return itemsFromDomain(found), nil
}

func itemsFromDomain(items []domain.Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{
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
	return out
}
