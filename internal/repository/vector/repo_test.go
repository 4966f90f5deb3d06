package vector

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/soko-cloud/semsearch/internal/db"
	"github.com/soko-cloud/semsearch/internal/domain"
)

func TestVectorBytes_RoundTrip(t *testing.T) {
	v := []float32{0.1, -2.5, 0, 1e-7}

	got := bytesToVector(vectorToBytes(v))

	if !reflect.DeepEqual(got, v) {
		t.Errorf("round trip = %v, want %v", got, v)
	}
}

func TestBytesToVector_Malformed(t *testing.T) {
	if got := bytesToVector("abc"); got != nil {
		t.Errorf("expected nil for truncated payload, got %v", got)
	}
}

func TestPutBatch_SingleRoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, batch []db.HashSetItem) error {
		got = batch
		return nil
	}

	recs := []domain.ItemVectorRecord{
		{ItemID: "item-1", Embedding: []float32{0.5, -0.5}},
		{ItemID: "item-2", Embedding: []float32{1, 0}},
	}
	if err := repo.PutBatch(context.Background(), recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("batch size = %d, want 2", len(got))
	}
	if got[1].Key != "semsearch:vector:item-2" {
		t.Errorf("key = %q", got[1].Key)
	}
	if v := bytesToVector(got[0].Fields["embedding"]); !reflect.DeepEqual(v, recs[0].Embedding) {
		t.Errorf("embedding = %v, want %v", v, recs[0].Embedding)
	}
}

func TestPutBatch_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetMultiFn = func(_ context.Context, _ []db.HashSetItem) error {
		return errors.New("pipeline broken")
	}

	err := repo.PutBatch(context.Background(), []domain.ItemVectorRecord{{ItemID: "x"}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)

	var stored map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != "semsearch:vector:item-1" {
			t.Errorf("key = %q", key)
		}
		stored = fields
		return nil
	}
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return stored, nil
	}

	want := domain.ItemVectorRecord{ItemID: "item-1", Embedding: []float32{0.5, -0.5}}
	if err := repo.Put(context.Background(), want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Get(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrVectorNotFound) {
		t.Fatalf("err = %v, want ErrVectorNotFound", err)
	}
}

func TestGetAll_EnumeratesCorpus(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "semsearch:vector:*" {
			t.Errorf("pattern = %q", pattern)
		}
		return []string{"semsearch:vector:a", "semsearch:vector:b"}, nil
	}
	ms.hgetAllMultiF = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{
			{"embedding": vectorToBytes([]float32{1, 0})},
			{"embedding": vectorToBytes([]float32{0, 1})},
		}, nil
	}

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.ItemVectorRecord{
		{ItemID: "a", Embedding: []float32{1, 0}},
		{ItemID: "b", Embedding: []float32{0, 1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGetAll_EmptyCorpus(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestGetAll_SkipsConcurrentlyDeleted(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"semsearch:vector:a", "semsearch:vector:gone"}, nil
	}
	ms.hgetAllMultiF = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{
			{"embedding": vectorToBytes([]float32{1})},
			{}, // deleted between SCAN and HGETALL
		}, nil
	}

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ItemID != "a" {
		t.Errorf("got %+v, want only record a", got)
	}
}

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	ms.delFn = func(_ context.Context, key string) error {
		gotKey = key
		return nil
	}

	if err := repo.Delete(context.Background(), "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "semsearch:vector:item-1" {
		t.Errorf("key = %q", gotKey)
	}
}
