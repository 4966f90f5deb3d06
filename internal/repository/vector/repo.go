// Package vector persists item embeddings, one hash per item keyed by the
// item id so the at-most-one invariant holds structurally.
package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/soko-cloud/semsearch/internal/db"
	"github.com/soko-cloud/semsearch/internal/domain"
)

const defaultPrefix = "semsearch:"

// Repo stores vectors in hashes keyed <prefix>vector:<item_id>.
type Repo struct {
	store  db.HashStore
	prefix string
}

// New creates a vector repository.
func New(store db.HashStore) *Repo {
	return &Repo{store: store, prefix: defaultPrefix}
}

// WithPrefix overrides the key prefix.
func (r *Repo) WithPrefix(prefix string) *Repo {
	r.prefix = prefix
	return r
}

func (r *Repo) key(itemID string) string {
	return r.prefix + "vector:" + itemID
}

// Put upserts the embedding for an item. Keyed by item id, so a re-encode
// replaces the previous record instead of accumulating.
func (r *Repo) Put(ctx context.Context, rec domain.ItemVectorRecord) error {
	fields := map[string]string{"embedding": vectorToBytes(rec.Embedding)}
	if err := r.store.HSet(ctx, r.key(rec.ItemID), fields); err != nil {
		return fmt.Errorf("put vector %s: %w", rec.ItemID, err)
	}
	return nil
}

// PutBatch upserts a batch of vector records in one pipelined round-trip.
func (r *Repo) PutBatch(ctx context.Context, recs []domain.ItemVectorRecord) error {
	if len(recs) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, len(recs))
	for i, rec := range recs {
		batch[i] = db.HashSetItem{
			Key:    r.key(rec.ItemID),
			Fields: map[string]string{"embedding": vectorToBytes(rec.Embedding)},
		}
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("put %d vectors: %w", len(recs), err)
	}
	return nil
}

// Get returns the vector record for an item, or domain.ErrVectorNotFound.
func (r *Repo) Get(ctx context.Context, itemID string) (domain.ItemVectorRecord, error) {
	m, err := r.store.HGetAll(ctx, r.key(itemID))
	if err != nil {
		return domain.ItemVectorRecord{}, fmt.Errorf("get vector %s: %w", itemID, err)
	}
	if len(m) == 0 {
		return domain.ItemVectorRecord{}, domain.ErrVectorNotFound
	}
	return domain.ItemVectorRecord{ItemID: itemID, Embedding: bytesToVector(m["embedding"])}, nil
}

// GetAll returns the full vector corpus. This feeds the exhaustive
// similarity scan, so it enumerates keys and batch-fetches in one
// DoMulti round-trip.
func (r *Repo) GetAll(ctx context.Context) ([]domain.ItemVectorRecord, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan vectors: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch vectors: %w", err)
	}

	records := make([]domain.ItemVectorRecord, 0, len(keys))
	for i, m := range maps {
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		records = append(records, domain.ItemVectorRecord{
			ItemID:    strings.TrimPrefix(keys[i], r.key("")),
			Embedding: bytesToVector(m["embedding"]),
		})
	}
	return records, nil
}

// Delete removes an item's vector record (cascade on item deletion).
func (r *Repo) Delete(ctx context.Context, itemID string) error {
	if err := r.store.Del(ctx, r.key(itemID)); err != nil {
		return fmt.Errorf("delete vector %s: %w", itemID, err)
	}
	return nil
}
