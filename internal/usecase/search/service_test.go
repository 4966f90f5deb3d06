package search

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// --- Mocks ---

type mockEncoder struct {
	enc    domain.Encoding
	called bool
}

func (m *mockEncoder) EncodeQuery(_ context.Context, _ string) domain.Encoding {
	m.called = true
	return m.enc
}

type mockVectors struct {
	corpus []domain.ItemVectorRecord
	err    error
}

func (m *mockVectors) GetAll(_ context.Context) ([]domain.ItemVectorRecord, error) {
	return m.corpus, m.err
}

type mockItems struct {
	byID    map[string]domain.Item
	lastIDs []string
}

func (m *mockItems) GetByIDs(_ context.Context, ids []string) ([]domain.Item, error) {
	m.lastIDs = ids
	out := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := m.byID[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// --- Tests ---

func TestQuery_RanksAndHydratesInOrder(t *testing.T) {
	vectors := &mockVectors{corpus: []domain.ItemVectorRecord{
		{ItemID: "a", Embedding: []float32{1, 0}},
		{ItemID: "b", Embedding: []float32{0, 1}},
		{ItemID: "c", Embedding: []float32{0.9, 0.1}},
	}}
	items := &mockItems{byID: map[string]domain.Item{
		"a": {ID: "a"}, "b": {ID: "b"}, "c": {ID: "c"},
	}}
	enc := &mockEncoder{enc: domain.Embedded([]float32{1, 0})}
	svc := New(vectors, items, enc).WithTopK(2)

	got, err := svc.Query(context.Background(), "red shoe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make([]string, len(got))
	for i, it := range got {
		ids[i] = it.ID
	}
	if !reflect.DeepEqual(ids, []string{"a", "c"}) {
		t.Errorf("ids = %v, want [a c]", ids)
	}
	if !reflect.DeepEqual(items.lastIDs, []string{"a", "c"}) {
		t.Errorf("hydration ids = %v, want rank order", items.lastIDs)
	}
}

func TestQuery_EncodingUnavailable(t *testing.T) {
	vectors := &mockVectors{corpus: []domain.ItemVectorRecord{{ItemID: "a", Embedding: []float32{1}}}}
	enc := &mockEncoder{enc: domain.Unavailable("model failure")}
	svc := New(vectors, &mockItems{}, enc)

	got, err := svc.Query(context.Background(), "red shoe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0 for unavailable encoding", len(got))
	}
}

func TestQuery_EmptyCorpus(t *testing.T) {
	enc := &mockEncoder{enc: domain.Embedded([]float32{1, 0})}
	svc := New(&mockVectors{}, &mockItems{}, enc)

	got, err := svc.Query(context.Background(), "red shoe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
}

func TestQuery_CorpusError(t *testing.T) {
	enc := &mockEncoder{enc: domain.Embedded([]float32{1, 0})}
	svc := New(&mockVectors{err: errors.New("boom")}, &mockItems{}, enc)

	if _, err := svc.Query(context.Background(), "red shoe"); err == nil {
		t.Fatal("expected error")
	}
}
