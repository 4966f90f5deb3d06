package assist

import (
	"context"
	"errors"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// mockCompleter replays scripted completions in order. A run that asks for
// more turns than scripted gets an error.
type mockCompleter struct {
	script []Completion
	calls  [][]Message
}

func (m *mockCompleter) Complete(_ context.Context, messages []Message, _ []ToolSpec) (Completion, error) {
	m.calls = append(m.calls, append([]Message(nil), messages...))
	if len(m.calls) > len(m.script) {
		return Completion{}, errors.New("script exhausted")
	}
	return m.script[len(m.calls)-1], nil
}

type mockCatalog struct {
	categories []domain.CategoryCandidate
	brands     []domain.Brand
	err        error
}

func (m *mockCatalog) FindCategories(_ context.Context, _ string) ([]domain.CategoryCandidate, error) {
	return m.categories, m.err
}

func (m *mockCatalog) FindBrands(_ context.Context, _ string) ([]domain.Brand, error) {
	return m.brands, m.err
}

type mockEncoder struct {
	enc   domain.Encoding
	calls int
}

func (m *mockEncoder) EncodeItem(_ context.Context, _ domain.ItemAttributes) domain.Encoding {
	m.calls++
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
	byID map[string]domain.Item
}

func (m *mockItems) GetByIDs(_ context.Context, ids []string) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := m.byID[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func toolCallCompletion(id, name, args string) Completion {
	return Completion{ToolCalls: []RawToolCall{{ID: id, Name: name, Arguments: args}}}
}
