package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soko-cloud/semsearch/internal/db"
	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/encoder"
	itemrepo "github.com/soko-cloud/semsearch/internal/repository/item"
	taxonomyrepo "github.com/soko-cloud/semsearch/internal/repository/taxonomy"
	vectorrepo "github.com/soko-cloud/semsearch/internal/repository/vector"
)

type ingester struct {
	items     *itemrepo.Repo
	vectors   *vectorrepo.Repo
	taxonomy  *taxonomyrepo.Repo
	cursor    *cursor
	model     *encoder.Model
	logger    *zap.Logger
	batchSize int
}

// ingestTaxonomy loads categories, brands and conditions. Category depth is
// derived from parent links so lookup candidates carry full paths.
func (g *ingester) ingestTaxonomy(ctx context.Context, dataDir string) error {
	cats, err := readTaxonomy(filepath.Join(dataDir, "categories.parquet"))
	if err != nil {
		return fmt.Errorf("read categories: %w", err)
	}
	depths := categoryDepths(cats)
	for _, c := range cats {
		err := g.taxonomy.PutCategory(ctx, domain.Category{
			ID:       c.ID,
			Name:     c.Name,
			ParentID: c.ParentID,
			Depth:    depths[c.ID],
		})
		if err != nil {
			return fmt.Errorf("put category %d: %w", c.ID, err)
		}
	}

	brands, err := readTaxonomy(filepath.Join(dataDir, "brands.parquet"))
	if err != nil {
		return fmt.Errorf("read brands: %w", err)
	}
	for _, b := range brands {
		if err := g.taxonomy.PutBrand(ctx, domain.Brand{ID: b.ID, Name: b.Name}); err != nil {
			return fmt.Errorf("put brand %d: %w", b.ID, err)
		}
	}

	conds, err := readTaxonomy(filepath.Join(dataDir, "conditions.parquet"))
	if err != nil {
		return fmt.Errorf("read conditions: %w", err)
	}
	for _, c := range conds {
		if err := g.taxonomy.PutCondition(ctx, domain.Condition{ID: c.ID, Name: c.Name}); err != nil {
			return fmt.Errorf("put condition %d: %w", c.ID, err)
		}
	}

	g.logger.Info("taxonomy loaded",
		zap.Int("categories", len(cats)),
		zap.Int("brands", len(brands)),
		zap.Int("conditions", len(conds)),
	)
	return nil
}

// ingestItems streams item rows from dataDir, resuming from the saved cursor.
// Rows are buffered and written in pipelined batches; the cursor advances
// only after a batch is flushed, so a crash re-ingests at most one batch.
// Rows whose encoding is unavailable keep the item but skip the vector.
func (g *ingester) ingestItems(ctx context.Context, dataDir string, maxRows int) (int, error) {
	files, err := itemFiles(dataDir)
	if err != nil {
		return 0, err
	}

	offset, err := g.cursor.Load(ctx)
	if err != nil {
		return 0, err
	}
	if offset > 0 {
		g.logger.Info("resuming from cursor", zap.Int("offset", offset))
	}

	loaded := 0
	skippedVectors := 0
	pendingItems := make([]domain.Item, 0, g.batchSize)
	pendingVecs := make([]domain.ItemVectorRecord, 0, g.batchSize)

	flush := func(nextSeq int) error {
		if err := g.items.PutBatch(ctx, pendingItems); err != nil {
			return err
		}
		if err := g.vectors.PutBatch(ctx, pendingVecs); err != nil {
			return err
		}
		loaded += len(pendingItems)
		pendingItems = pendingItems[:0]
		pendingVecs = pendingVecs[:0]
		return g.cursor.Save(ctx, nextSeq)
	}

	var loopErr error
	read, err := readItems(files, offset, maxRows, func(row *itemRow, seq int) bool {
		if ctx.Err() != nil {
			loopErr = ctx.Err()
			return false
		}

		item := toItem(row)
		pendingItems = append(pendingItems, item)

		enc := g.model.EncodeItem(domain.AttributesOf(item))
		if enc.Available() {
			pendingVecs = append(pendingVecs, domain.ItemVectorRecord{ItemID: item.ID, Embedding: enc.Vector()})
		} else {
			skippedVectors++
			g.logger.Warn("vector skipped",
				zap.String("item_id", item.ID),
				zap.String("reason", enc.Reason()),
			)
		}

		if len(pendingItems) >= g.batchSize {
			if err := flush(seq + 1); err != nil {
				loopErr = err
				return false
			}
			g.logger.Info("progress", zap.Int("loaded", loaded), zap.Int("seq", seq+1))
		}
		return true
	})
	if loopErr != nil {
		return loaded, loopErr
	}
	if err != nil {
		return loaded, err
	}

	if err := flush(offset + read); err != nil {
		return loaded, err
	}
	if skippedVectors > 0 {
		g.logger.Warn("some items have no vector", zap.Int("count", skippedVectors))
	}
	return loaded, nil
}

func toItem(row *itemRow) domain.Item {
	id := row.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	return domain.Item{
		ID:          id,
		SellerID:    row.SellerID,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		CategoryID:  row.CategoryID,
		BrandID:     row.BrandID,
		ConditionID: row.ConditionID,
		Status:      row.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// categoryDepths computes each category's depth by walking parent links.
// Roots have depth 1; cycles and dangling parents cap at the walk limit.
func categoryDepths(rows []nameRow) map[int64]int {
	parents := make(map[int64]int64, len(rows))
	for _, r := range rows {
		parents[r.ID] = r.ParentID
	}
	depths := make(map[int64]int, len(rows))
	for _, r := range rows {
		depth := 1
		cur := r.ParentID
		for cur != 0 && depth < 16 {
			depth++
			cur = parents[cur]
		}
		depths[r.ID] = depth
	}
	return depths
}

// cursor persists the ingest offset in the store so interrupted runs resume.
type cursor struct {
	kv  db.KVStore
	key string
}

func newCursor(kv db.KVStore, prefix string) *cursor {
	return &cursor{kv: kv, key: prefix + "loader:cursor"}
}

func (c *cursor) Load(ctx context.Context) (int, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load cursor: %w", err)
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("parse cursor %q: %w", raw, err)
	}
	return n, nil
}

func (c *cursor) Save(ctx context.Context, offset int) error {
	if err := c.kv.Set(ctx, c.key, []byte(strconv.Itoa(offset))); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

func (c *cursor) Reset(ctx context.Context) error {
	return c.Save(ctx, 0)
}
