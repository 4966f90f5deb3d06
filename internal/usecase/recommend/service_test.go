package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/soko-cloud/semsearch/internal/domain"
)

type mockVectors struct {
	seed    []float32
	seedErr error
	corpus  []domain.ItemVectorRecord
	allErr  error
}

func (m *mockVectors) Get(_ context.Context, itemID string) (domain.ItemVectorRecord, error) {
	if m.seedErr != nil {
		return domain.ItemVectorRecord{}, m.seedErr
	}
	return domain.ItemVectorRecord{ItemID: itemID, Embedding: m.seed}, nil
}

func (m *mockVectors) GetAll(_ context.Context) ([]domain.ItemVectorRecord, error) {
	return m.corpus, m.allErr
}

type mockItems struct {
	lastIDs []string
}

func (m *mockItems) GetByIDs(_ context.Context, ids []string) ([]domain.Item, error) {
	m.lastIDs = ids
	out := make([]domain.Item, len(ids))
	for i, id := range ids {
		out[i] = domain.Item{ID: id}
	}
	return out, nil
}

func TestForItem_ExcludesSeedAndCapsResults(t *testing.T) {
	vectors := &mockVectors{
		seed: []float32{1, 0},
		corpus: []domain.ItemVectorRecord{
			{ItemID: "seed", Embedding: []float32{1, 0}},
			{ItemID: "a", Embedding: []float32{0.9, 0.1}},
			{ItemID: "b", Embedding: []float32{0, 1}},
			{ItemID: "c", Embedding: []float32{0.8, 0.2}},
			{ItemID: "d", Embedding: []float32{0.7, 0.3}},
		},
	}
	items := &mockItems{}
	svc := New(vectors, items)

	got, err := svc.ForItem(context.Background(), "seed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make([]string, len(got))
	for i, it := range got {
		ids[i] = it.ID
	}
	if !reflect.DeepEqual(ids, []string{"a", "c", "d"}) {
		t.Errorf("ids = %v, want [a c d]", ids)
	}
	for _, id := range ids {
		if id == "seed" {
			t.Error("seed item leaked into recommendations")
		}
	}
}

func TestForItem_SeedVectorMissing(t *testing.T) {
	vectors := &mockVectors{seedErr: domain.ErrVectorNotFound}
	svc := New(vectors, &mockItems{})

	got, err := svc.ForItem(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0 for missing seed vector", len(got))
	}
}

func TestForItem_SeedLoadError(t *testing.T) {
	vectors := &mockVectors{seedErr: errors.New("boom")}
	svc := New(vectors, &mockItems{})

	if _, err := svc.ForItem(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
}

func TestForItem_CorpusOnlySeed(t *testing.T) {
	vectors := &mockVectors{
		seed:   []float32{1, 0},
		corpus: []domain.ItemVectorRecord{{ItemID: "seed", Embedding: []float32{1, 0}}},
	}
	svc := New(vectors, &mockItems{})

	got, err := svc.ForItem(context.Background(), "seed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
}

func TestForItem_CorpusError(t *testing.T) {
	vectors := &mockVectors{seed: []float32{1}, allErr: errors.New("boom")}
	svc := New(vectors, &mockItems{})

	if _, err := svc.ForItem(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
}
