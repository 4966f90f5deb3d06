package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// --- Mocks ---

type mockCategories struct {
	cats []domain.Category
	err  error
}

func (m *mockCategories) Categories(_ context.Context) ([]domain.Category, error) {
	return m.cats, m.err
}

type mockBrands struct {
	brands []domain.Brand
	err    error
}

func (m *mockBrands) Brands(_ context.Context) ([]domain.Brand, error) {
	return m.brands, m.err
}

func testTree() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Electronics", Depth: 1},
		{ID: 2, Name: "Cameras", ParentID: 1, Depth: 2},
		{ID: 3, Name: "Camera Lenses", ParentID: 1, Depth: 2},
		{ID: 4, Name: "Fashion", Depth: 1},
		{ID: 5, Name: "Camera Bags", ParentID: 4, Depth: 2},
		{ID: 6, Name: "Tripods", ParentID: 1, Depth: 3}, // wrong depth, never matches
	}
}

// --- Tests ---

func TestFindCategories_TieredAndPathed(t *testing.T) {
	svc := New(&mockCategories{cats: testTree()}, &mockBrands{})

	got, err := svc.FindCategories(context.Background(), "cameras")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.CategoryCandidate{
		{ID: 2, Name: "Cameras", Path: "Electronics > Cameras"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFindCategories_PrefixBeforeSubstring(t *testing.T) {
	svc := New(&mockCategories{cats: testTree()}, &mockBrands{})

	got, err := svc.FindCategories(context.Background(), "camera")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	// All are prefix matches; alphabetical within the tier.
	want := []string{"Camera Bags", "Camera Lenses", "Cameras"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestFindCategories_IgnoresOtherDepths(t *testing.T) {
	svc := New(&mockCategories{cats: testTree()}, &mockBrands{})

	got, err := svc.FindCategories(context.Background(), "tripods")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want no matches outside depth 2", got)
	}
}

func TestFindCategories_DanglingParent(t *testing.T) {
	cats := []domain.Category{
		{ID: 2, Name: "Orphans", ParentID: 99, Depth: 2},
	}
	svc := New(&mockCategories{cats: cats}, &mockBrands{})

	got, err := svc.FindCategories(context.Background(), "orphans")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Path != "Orphans" {
		t.Errorf("got %+v, want bare name path", got)
	}
}

func TestFindBrands_TierOrdering(t *testing.T) {
	brands := []domain.Brand{
		{ID: 1, Name: "Nikon Pro"},
		{ID: 2, Name: "Nikon"},
		{ID: 3, Name: "Unikon"},
		{ID: 4, Name: "Canon"},
	}
	svc := New(&mockCategories{}, &mockBrands{brands: brands})

	got, err := svc.FindBrands(context.Background(), "nikon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make([]string, len(got))
	for i, b := range got {
		names[i] = b.Name
	}
	want := []string{"Nikon", "Nikon Pro", "Unikon"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want exact > prefix > substring", names)
	}
}

func TestFindBrands_CapAtTen(t *testing.T) {
	var brands []domain.Brand
	for i := 0; i < 15; i++ {
		brands = append(brands, domain.Brand{ID: int64(i), Name: fmt.Sprintf("Acme %02d", i)})
	}
	svc := New(&mockCategories{}, &mockBrands{brands: brands})

	got, err := svc.FindBrands(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("got %d brands, want cap of 10", len(got))
	}
}

func TestFindBrands_ReaderError(t *testing.T) {
	svc := New(&mockCategories{}, &mockBrands{err: errors.New("boom")})

	if _, err := svc.FindBrands(context.Background(), "nikon"); err == nil {
		t.Fatal("expected error")
	}
}
