package encoder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// Artifact is the serialized two-tower item encoder: token vocabulary, fitted
// label maps with their embedding tables, and the projection layers. Exported
// once at training time and loaded read-only at process start.
type Artifact struct {
	// Dim is the output embedding dimension D.
	Dim int `json:"dim"`
	// SeqLen is the fixed token sequence length L.
	SeqLen int `json:"seq_len"`

	// Vocab maps words to token ids (>= 2; 0 = pad, 1 = unknown).
	Vocab map[string]int `json:"vocab"`
	// TokenEmbedding is the token table, one row per token id.
	TokenEmbedding [][]float32 `json:"token_embedding"`

	Brands     CategoricalTable `json:"brands"`
	Categories CategoricalTable `json:"categories"`
	Conditions CategoricalTable `json:"conditions"`

	// Hidden and Output are the projection: concat -> Hidden -> ReLU -> Output.
	Hidden DenseLayer `json:"hidden"`
	Output DenseLayer `json:"output"`
}

// CategoricalTable pairs a fitted label vocabulary with its embedding rows.
// Row 0 is the unknown-bucket embedding.
type CategoricalTable struct {
	Vocab     map[string]int `json:"vocab"`
	Embedding [][]float32    `json:"embedding"`
}

// DenseLayer holds weights in row-major [out][in] form plus a bias per output.
type DenseLayer struct {
	Weight [][]float32 `json:"weight"`
	Bias   []float32   `json:"bias"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks dimensional consistency between the tables and the
// projection layers.
func (a *Artifact) Validate() error {
	if a.Dim <= 0 {
		return fmt.Errorf("%w: dim must be positive, got %d", domain.ErrInvalidArtifact, a.Dim)
	}
	if a.SeqLen <= 0 {
		return fmt.Errorf("%w: seq_len must be positive, got %d", domain.ErrInvalidArtifact, a.SeqLen)
	}
	if len(a.TokenEmbedding) == 0 {
		return fmt.Errorf("%w: empty token embedding table", domain.ErrInvalidArtifact)
	}

	tokenDim := len(a.TokenEmbedding[0])
	if err := checkTable("tokens", a.TokenEmbedding, tokenDim); err != nil {
		return err
	}

	tables := []struct {
		name  string
		table CategoricalTable
	}{
		{"brands", a.Brands},
		{"categories", a.Categories},
		{"conditions", a.Conditions},
	}
	inDim := tokenDim + 1 // text repr + log1p(price)
	for _, tb := range tables {
		if len(tb.table.Embedding) != len(tb.table.Vocab)+1 {
			return fmt.Errorf("%w: %s table has %d rows for %d classes",
				domain.ErrInvalidArtifact, tb.name, len(tb.table.Embedding), len(tb.table.Vocab)+1)
		}
		dim := len(tb.table.Embedding[0])
		if err := checkTable(tb.name, tb.table.Embedding, dim); err != nil {
			return err
		}
		inDim += dim
	}

	if err := checkLayer("hidden", a.Hidden, inDim); err != nil {
		return err
	}
	if err := checkLayer("output", a.Output, len(a.Hidden.Bias)); err != nil {
		return err
	}
	if len(a.Output.Bias) != a.Dim {
		return fmt.Errorf("%w: output layer produces %d dims, want %d",
			domain.ErrInvalidArtifact, len(a.Output.Bias), a.Dim)
	}
	return nil
}

func checkTable(name string, rows [][]float32, dim int) error {
	if dim == 0 {
		return fmt.Errorf("%w: %s table has zero-width rows", domain.ErrInvalidArtifact, name)
	}
	for i, row := range rows {
		if len(row) != dim {
			return fmt.Errorf("%w: %s table row %d has %d dims, want %d",
				domain.ErrInvalidArtifact, name, i, len(row), dim)
		}
	}
	return nil
}

func checkLayer(name string, l DenseLayer, inDim int) error {
	if len(l.Weight) == 0 || len(l.Weight) != len(l.Bias) {
		return fmt.Errorf("%w: %s layer has %d weight rows for %d biases",
			domain.ErrInvalidArtifact, name, len(l.Weight), len(l.Bias))
	}
	for i, row := range l.Weight {
		if len(row) != inDim {
			return fmt.Errorf("%w: %s layer row %d has %d inputs, want %d",
				domain.ErrInvalidArtifact, name, i, len(row), inDim)
		}
	}
	return nil
}
