// Package item persists catalog items as one hash per item.
package item

import (
	"context"
	"fmt"

	"github.com/soko-cloud/semsearch/internal/db"
	"github.com/soko-cloud/semsearch/internal/domain"
)

const defaultPrefix = "semsearch:"

// Repo stores items in hashes keyed <prefix>item:<id>.
type Repo struct {
	store  db.HashStore
	prefix string
}

// New creates an item repository.
func New(store db.HashStore) *Repo {
	return &Repo{store: store, prefix: defaultPrefix}
}

// WithPrefix overrides the key prefix.
func (r *Repo) WithPrefix(prefix string) *Repo {
	r.prefix = prefix
	return r
}

func (r *Repo) key(id string) string {
	return r.prefix + "item:" + id
}

// Put upserts an item.
func (r *Repo) Put(ctx context.Context, it domain.Item) error {
	if err := r.store.HSet(ctx, r.key(it.ID), buildHashFields(it)); err != nil {
		return fmt.Errorf("put item %s: %w", it.ID, err)
	}
	return nil
}

// PutBatch upserts a batch of items in one pipelined round-trip. The bulk
// loader uses this to avoid a round-trip per row.
func (r *Repo) PutBatch(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, len(items))
	for i, it := range items {
		batch[i] = db.HashSetItem{Key: r.key(it.ID), Fields: buildHashFields(it)}
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("put %d items: %w", len(items), err)
	}
	return nil
}

// Get returns an item by id, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.Item, error) {
	m, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Item{}, domain.ErrNotFound
	}
	return parseHashFields(id, m), nil
}

// GetByIDs hydrates items in the same order as ids, silently dropping ids
// with no stored item. Callers rely on the order to preserve rank.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}

	items := make([]domain.Item, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		items = append(items, parseHashFields(ids[i], m))
	}
	return items, nil
}

// Delete removes an item hash.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}
