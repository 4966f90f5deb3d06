package assist

import "testing"

func TestParseToolCall_FindCategory(t *testing.T) {
	call := parseToolCall(toolFindCategory, `{"keyword":"shoes"}`)
	fc, ok := call.(FindCategoryCall)
	if !ok {
		t.Fatalf("got %T, want FindCategoryCall", call)
	}
	if fc.Keyword != "shoes" {
		t.Errorf("keyword = %q", fc.Keyword)
	}
}

func TestParseToolCall_SearchSimilarDefaults(t *testing.T) {
	call := parseToolCall(toolSearchSimilar, `{"category_id":7,"name":"red sneaker"}`)
	sc, ok := call.(SearchSimilarCall)
	if !ok {
		t.Fatalf("got %T, want SearchSimilarCall", call)
	}
	if sc.CategoryID != 7 || sc.Name != "red sneaker" {
		t.Errorf("call = %+v", sc)
	}
	if sc.Price != 0 {
		t.Errorf("price default = %v, want 0", sc.Price)
	}
	if sc.ConditionID != 1 {
		t.Errorf("condition default = %d, want 1", sc.ConditionID)
	}
}

func TestParseToolCall_SearchSimilarExplicit(t *testing.T) {
	call := parseToolCall(toolSearchSimilar, `{"category_id":7,"name":"red sneaker","price":1200,"condition_id":3}`)
	sc := call.(SearchSimilarCall)
	if sc.Price != 1200 || sc.ConditionID != 3 {
		t.Errorf("call = %+v", sc)
	}
}

func TestParseToolCall_MissingRequired(t *testing.T) {
	cases := []struct {
		name string
		tool string
		args string
	}{
		{"category no keyword", toolFindCategory, `{}`},
		{"brand empty keyword", toolFindBrand, `{"keyword":""}`},
		{"similar no category", toolSearchSimilar, `{"name":"x"}`},
		{"similar no name", toolSearchSimilar, `{"category_id":7}`},
		{"similar bad json", toolSearchSimilar, `{"category_id":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			call := parseToolCall(tc.tool, tc.args)
			if _, ok := call.(SkippedCall); !ok {
				t.Errorf("got %T, want SkippedCall", call)
			}
		})
	}
}

func TestParseToolCall_NegativePriceClamped(t *testing.T) {
	call := parseToolCall(toolSearchSimilar, `{"category_id":7,"name":"x","price":-50}`)
	sc := call.(SearchSimilarCall)
	if sc.Price != 0 {
		t.Errorf("price = %v, want 0", sc.Price)
	}
}

func TestParseToolCall_Unknown(t *testing.T) {
	call := parseToolCall("format_disk", `{}`)
	uc, ok := call.(UnknownCall)
	if !ok {
		t.Fatalf("got %T, want UnknownCall", call)
	}
	if uc.Name != "format_disk" {
		t.Errorf("name = %q", uc.Name)
	}
}
