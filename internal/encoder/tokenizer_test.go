package encoder

import (
	"reflect"
	"testing"
)

func TestTokenizer_Encode(t *testing.T) {
	tok := NewTokenizer(map[string]int{"red": 2, "shoe": 3}, 4)

	ids, mask := tok.Encode("Red shoe")

	if !reflect.DeepEqual(ids, []int{2, 3, 0, 0}) {
		t.Errorf("ids = %v, want [2 3 0 0]", ids)
	}
	if !reflect.DeepEqual(mask, []float32{1, 1, 0, 0}) {
		t.Errorf("mask = %v, want [1 1 0 0]", mask)
	}
}

func TestTokenizer_UnknownWords(t *testing.T) {
	tok := NewTokenizer(map[string]int{"red": 2}, 4)

	ids, _ := tok.Encode("red widget")

	if ids[1] != unknownTokenID {
		t.Errorf("ids[1] = %d, want unknown token %d", ids[1], unknownTokenID)
	}
}

func TestTokenizer_Truncates(t *testing.T) {
	tok := NewTokenizer(map[string]int{}, 2)

	ids, mask := tok.Encode("one two three four")

	if len(ids) != 2 || len(mask) != 2 {
		t.Fatalf("got %d ids, %d mask entries, want 2 each", len(ids), len(mask))
	}
	if mask[0] != 1 || mask[1] != 1 {
		t.Errorf("mask = %v, want all ones", mask)
	}
}

func TestTokenizer_EmptyText(t *testing.T) {
	tok := NewTokenizer(map[string]int{"red": 2}, 3)

	ids, mask := tok.Encode("")

	for i := range ids {
		if ids[i] != padTokenID || mask[i] != 0 {
			t.Fatalf("position %d: id=%d mask=%v, want padding", i, ids[i], mask[i])
		}
	}
}

func TestTokenizer_SplitsPunctuationAndCase(t *testing.T) {
	tok := NewTokenizer(map[string]int{"red": 2, "shoe": 3}, 4)

	ids, _ := tok.Encode("RED, shoe!")

	if ids[0] != 2 || ids[1] != 3 {
		t.Errorf("ids = %v, want [2 3 ...]", ids)
	}
}
