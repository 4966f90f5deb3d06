package encoder

import "sort"

// UnknownIndex is the reserved bucket for values not seen at fit time.
const UnknownIndex = 0

// LabelMap maps categorical string values to dense indices in [1, N].
// Index 0 is the unknown bucket, so the embedding table dimension is N+1.
// Immutable after construction.
type LabelMap struct {
	vocab map[string]int
}

// FitLabelMap assigns a dense index to every distinct value, sorted
// lexicographically for reproducibility. Indices start at 1; 0 stays
// reserved for unknown values.
func FitLabelMap(values []string) LabelMap {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	unique := make([]string, 0, len(seen))
	for v := range seen {
		unique = append(unique, v)
	}
	sort.Strings(unique)

	vocab := make(map[string]int, len(unique))
	for i, v := range unique {
		vocab[v] = i + 1
	}
	return LabelMap{vocab: vocab}
}

// NewLabelMap reconstructs a LabelMap from a fitted vocabulary
// (as loaded from the model artifact).
func NewLabelMap(vocab map[string]int) LabelMap {
	m := make(map[string]int, len(vocab))
	for k, v := range vocab {
		m[k] = v
	}
	return LabelMap{vocab: m}
}

// Transform maps a known value to its learned index and any unseen value to
// the unknown bucket. Unseen input is the designed degradation path, not an
// error.
func (m LabelMap) Transform(value string) int {
	if idx, ok := m.vocab[value]; ok {
		return idx
	}
	return UnknownIndex
}

// Classes returns the embedding table dimension: distinct values + 1 for the
// unknown bucket.
func (m LabelMap) Classes() int {
	return len(m.vocab) + 1
}
