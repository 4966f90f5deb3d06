package encoder

import "testing"

// testArtifact builds a tiny but dimensionally consistent artifact:
// token dim 3, brand/category dims 2, condition dim 1, hidden 2, output 4.
func testArtifact(t *testing.T) *Artifact {
	t.Helper()

	a := &Artifact{
		Dim:    4,
		SeqLen: 4,
		Vocab:  map[string]int{"red": 2, "shoe": 3},
		TokenEmbedding: [][]float32{
			{0, 0, 0},       // pad
			{0.1, 0.1, 0.1}, // unknown
			{1, 0, 0},       // red
			{0, 1, 0},       // shoe
		},
		Brands: CategoricalTable{
			Vocab:     map[string]int{"12": 1, "5": 2},
			Embedding: [][]float32{{0, 0}, {1, 0}, {0, 1}},
		},
		Categories: CategoricalTable{
			Vocab:     map[string]int{"7": 1},
			Embedding: [][]float32{{0, 0}, {0.5, 0.5}},
		},
		Conditions: CategoricalTable{
			Vocab:     map[string]int{"1": 1},
			Embedding: [][]float32{{0}, {1}},
		},
		Hidden: DenseLayer{
			Weight: [][]float32{
				{1, 1, 1, 1, 1, 1, 1, 1, 1},
				{1, -1, 1, -1, 1, -1, 1, -1, 1},
			},
			Bias: []float32{0.1, 0.2},
		},
		Output: DenseLayer{
			Weight: [][]float32{
				{1, 0},
				{0, 1},
				{0.5, 0.5},
				{-0.5, 0.5},
			},
			Bias: []float32{0, 0.1, 0.2, 0.3},
		},
	}

	if err := a.Validate(); err != nil {
		t.Fatalf("test artifact invalid: %v", err)
	}
	return a
}

func testModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(testArtifact(t))
}
