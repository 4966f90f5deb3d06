// Package taxonomy persists the category tree, brands, and condition grades.
// These tables are small and read whole; keyword matching happens in the
// catalog use case.
package taxonomy

import (
	"context"
	"fmt"
	"strconv"

	"github.com/soko-cloud/semsearch/internal/db"
	"github.com/soko-cloud/semsearch/internal/domain"
)

const defaultPrefix = "semsearch:"

// Repo stores taxonomy rows in hashes keyed <prefix>category:<id>,
// <prefix>brand:<id>, <prefix>condition:<id>.
type Repo struct {
	store  db.HashStore
	prefix string
}

// New creates a taxonomy repository.
func New(store db.HashStore) *Repo {
	return &Repo{store: store, prefix: defaultPrefix}
}

// WithPrefix overrides the key prefix.
func (r *Repo) WithPrefix(prefix string) *Repo {
	r.prefix = prefix
	return r
}

// PutCategory upserts a category node.
func (r *Repo) PutCategory(ctx context.Context, c domain.Category) error {
	key := r.prefix + "category:" + strconv.FormatInt(c.ID, 10)
	fields := map[string]string{
		"name":  c.Name,
		"depth": strconv.Itoa(c.Depth),
	}
	if c.ParentID != 0 {
		fields["parent_id"] = strconv.FormatInt(c.ParentID, 10)
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("put category %d: %w", c.ID, err)
	}
	return nil
}

// Categories returns all category nodes.
func (r *Repo) Categories(ctx context.Context) ([]domain.Category, error) {
	keys, maps, err := r.scanAll(ctx, "category:")
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(keys))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		id, err := strconv.ParseInt(keys[i], 10, 64)
		if err != nil {
			continue
		}
		c := domain.Category{ID: id, Name: m["name"]}
		c.ParentID, _ = strconv.ParseInt(m["parent_id"], 10, 64)
		c.Depth, _ = strconv.Atoi(m["depth"])
		out = append(out, c)
	}
	return out, nil
}

// PutBrand upserts a brand.
func (r *Repo) PutBrand(ctx context.Context, b domain.Brand) error {
	key := r.prefix + "brand:" + strconv.FormatInt(b.ID, 10)
	if err := r.store.HSet(ctx, key, map[string]string{"name": b.Name}); err != nil {
		return fmt.Errorf("put brand %d: %w", b.ID, err)
	}
	return nil
}

// Brands returns all brands.
func (r *Repo) Brands(ctx context.Context) ([]domain.Brand, error) {
	keys, maps, err := r.scanAll(ctx, "brand:")
	if err != nil {
		return nil, err
	}

	out := make([]domain.Brand, 0, len(keys))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		id, err := strconv.ParseInt(keys[i], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, domain.Brand{ID: id, Name: m["name"]})
	}
	return out, nil
}

// PutCondition upserts a condition grade.
func (r *Repo) PutCondition(ctx context.Context, c domain.Condition) error {
	key := r.prefix + "condition:" + strconv.FormatInt(c.ID, 10)
	fields := map[string]string{
		"name":       c.Name,
		"sort_order": strconv.Itoa(c.SortOrder),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("put condition %d: %w", c.ID, err)
	}
	return nil
}

// scanAll enumerates <prefix><kind>* keys and batch-fetches their hashes.
// Returned keys are stripped to the bare id.
func (r *Repo) scanAll(ctx context.Context, kind string) ([]string, []map[string]string, error) {
	keys, err := r.store.Scan(ctx, r.prefix+kind+"*")
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", kind, err)
	}
	if len(keys) == 0 {
		return nil, nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", kind, err)
	}

	ids := make([]string, len(keys))
	strip := r.prefix + kind
	for i, k := range keys {
		ids[i] = k[len(strip):]
	}
	return ids, maps, nil
}
