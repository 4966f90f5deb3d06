package encoder

import (
	"fmt"
	"math"
	"strconv"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// nullSentinel is what a missing categorical id is coerced to before the
// label lookup. It is not part of any fitted vocabulary, so it lands in the
// unknown bucket.
const nullSentinel = "0"

// queryPrice is the representative price used when encoding free text, which
// carries no catalog attributes.
var queryPrice = math.Log1p(3000)

// Model runs the item/query tower: pooled text representation, categorical
// embeddings, log1p(price), projection, L2 normalization. Weights are loaded
// once and never mutated, so a single Model is safe for concurrent inference.
type Model struct {
	tokenizer  *Tokenizer
	tokens     [][]float32
	brands     categorical
	categories categorical
	conditions categorical
	hidden     DenseLayer
	output     DenseLayer
	dim        int
}

type categorical struct {
	labels LabelMap
	table  [][]float32
}

func (c categorical) row(value string) []float32 {
	return c.table[c.labels.Transform(value)]
}

// NewModel builds a Model from a validated artifact.
func NewModel(a *Artifact) *Model {
	return &Model{
		tokenizer:  NewTokenizer(a.Vocab, a.SeqLen),
		tokens:     a.TokenEmbedding,
		brands:     categorical{labels: NewLabelMap(a.Brands.Vocab), table: a.Brands.Embedding},
		categories: categorical{labels: NewLabelMap(a.Categories.Vocab), table: a.Categories.Embedding},
		conditions: categorical{labels: NewLabelMap(a.Conditions.Vocab), table: a.Conditions.Embedding},
		hidden:     a.Hidden,
		output:     a.Output,
		dim:        a.Dim,
	}
}

// Dim returns the output embedding dimension D.
func (m *Model) Dim() int { return m.dim }

// EncodeItem produces a unit-normalized embedding from item attributes.
// Any failure inside the pipeline degrades to Unavailable; callers skip
// persistence and ranking for that item instead of failing the request.
func (m *Model) EncodeItem(attrs domain.ItemAttributes) domain.Encoding {
	return m.encode(
		attrs.Title,
		categoricalSentinel(attrs.BrandID),
		categoricalSentinel(attrs.CategoryID),
		categoricalSentinel(attrs.ConditionID),
		math.Log1p(math.Max(attrs.Price, 0)),
	)
}

// EncodeQuery encodes free text with all categorical inputs in the unknown
// bucket and the representative query price.
func (m *Model) EncodeQuery(text string) domain.Encoding {
	return m.encode(text, nullSentinel, nullSentinel, nullSentinel, queryPrice)
}

func (m *Model) encode(text, brand, category, condition string, logPrice float64) (enc domain.Encoding) {
	// The forward pass must never take down the request: a corrupt table row
	// or dimension drift degrades to Unavailable.
	defer func() {
		if r := recover(); r != nil {
			enc = domain.Unavailable(fmt.Sprintf("forward pass: %v", r))
		}
	}()

	ids, mask := m.tokenizer.Encode(text)
	text32 := m.poolTokens(ids, mask)

	in := make([]float32, 0, len(text32)+len(m.brands.table[0])+
		len(m.categories.table[0])+len(m.conditions.table[0])+1)
	in = append(in, text32...)
	in = append(in, m.brands.row(brand)...)
	in = append(in, m.categories.row(category)...)
	in = append(in, m.conditions.row(condition)...)
	in = append(in, float32(logPrice))

	h := m.hidden.apply(in)
	relu(h)
	out := m.output.apply(h)

	if !l2Normalize(out) {
		return domain.Unavailable("projection produced a zero vector")
	}
	return domain.Embedded(out)
}

// poolTokens mean-pools token embeddings over the attention mask. An empty
// sequence yields the zero text representation.
func (m *Model) poolTokens(ids []int, mask []float32) []float32 {
	dim := len(m.tokens[0])
	pooled := make([]float32, dim)

	var count float32
	for i, id := range ids {
		if mask[i] == 0 {
			continue
		}
		row := m.tokens[id]
		for j := range pooled {
			pooled[j] += row[j]
		}
		count++
	}
	if count > 0 {
		for j := range pooled {
			pooled[j] /= count
		}
	}
	return pooled
}

// apply computes Wx+b with weights in row-major [out][in] form.
func (l DenseLayer) apply(in []float32) []float32 {
	out := make([]float32, len(l.Weight))
	for i, row := range l.Weight {
		if len(row) != len(in) {
			panic(fmt.Sprintf("layer input %d, want %d", len(in), len(row)))
		}
		sum := l.Bias[i]
		for j, w := range row {
			sum += w * in[j]
		}
		out[i] = sum
	}
	return out
}

func relu(v []float32) {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		}
	}
}

// l2Normalize scales v to unit length in place. Returns false for the zero
// vector, which carries no direction to normalize.
func l2Normalize(v []float32) bool {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return false
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return true
}

// categoricalSentinel coerces an optional id to its lookup string; nil
// becomes the null sentinel and lands in the unknown bucket.
func categoricalSentinel(id *int64) string {
	if id == nil {
		return nullSentinel
	}
	return strconv.FormatInt(*id, 10)
}
