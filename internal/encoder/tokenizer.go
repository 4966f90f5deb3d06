package encoder

import (
	"strings"
	"unicode"
)

// Reserved token ids. The vocabulary in the artifact starts at 2.
const (
	padTokenID     = 0
	unknownTokenID = 1
)

// Tokenizer turns a title or query into a fixed-length id sequence plus an
// attention mask. Out-of-vocabulary words map to the unknown token.
type Tokenizer struct {
	vocab  map[string]int
	seqLen int
}

// NewTokenizer builds a tokenizer from an artifact vocabulary.
func NewTokenizer(vocab map[string]int, seqLen int) *Tokenizer {
	return &Tokenizer{vocab: vocab, seqLen: seqLen}
}

// Encode lowercases, splits on non-alphanumeric runes, looks words up in the
// vocabulary and pads/truncates to the fixed sequence length. The mask is 1
// for real tokens and 0 for padding.
func (t *Tokenizer) Encode(text string) (ids []int, mask []float32) {
	ids = make([]int, t.seqLen)
	mask = make([]float32, t.seqLen)

	pos := 0
	for _, word := range splitWords(text) {
		if pos >= t.seqLen {
			break
		}
		id, ok := t.vocab[word]
		if !ok {
			id = unknownTokenID
		}
		ids[pos] = id
		mask[pos] = 1
		pos++
	}
	return ids, mask
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
