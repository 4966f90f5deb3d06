// Package assist runs the conversational shopping agent: a bounded loop that
// alternates reasoning-service turns with local tool execution until a plain
// reply is produced or the turn budget runs out.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/metrics"
	"github.com/soko-cloud/semsearch/internal/ranker"
)

const (
	defaultMaxTurns = 3
	similarTopK     = 3

	systemPrompt = "You are a shopping assistant for a second-hand marketplace. " +
		"Help the user find items they describe. Use find_category_id and " +
		"find_brand_id to resolve keywords to catalog ids, then " +
		"search_similar_items to fetch matching listings. Answer in the " +
		"user's language and keep replies short."

	fallbackReply = "Sorry, I couldn't finish looking that up. Please try again in a moment."
)

// Message is one conversation turn. It round-trips through JSON so clients
// can carry history across requests.
type Message struct {
	Role       string        `json:"role"`
	Content    string        `json:"content"`
	Name       string        `json:"name,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
	ToolCalls  []MessageCall `json:"tool_calls,omitempty"`
}

// MessageCall records a tool call on an assistant message.
type MessageCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Termination is how an agent run ended.
type Termination int

const (
	// Replied means the reasoning service produced a plain reply.
	Replied Termination = iota
	// BudgetExhausted means max turns elapsed without a plain reply.
	BudgetExhausted
	// UpstreamFailure means the reasoning service failed or timed out.
	UpstreamFailure
)

func (t Termination) String() string {
	switch t {
	case Replied:
		return "replied"
	case BudgetExhausted:
		return "budget_exhausted"
	case UpstreamFailure:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of one agent run. Items is the last result of a
// search_similar_items call, regardless of how the run ended.
type Outcome struct {
	Termination Termination
	Reply       string
	History     []Message
	Items       []domain.Item
}

// Service orchestrates the agent loop.
type Service struct {
	completer Completer
	catalog   CatalogFinder
	encoder   ItemEncoder
	vectors   VectorReader
	items     ItemReader
	logger    *zap.Logger
	maxTurns  int
	timeout   time.Duration
}

// New creates an assist service.
func New(completer Completer, catalog CatalogFinder, encoder ItemEncoder, vectors VectorReader, items ItemReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		completer: completer,
		catalog:   catalog,
		encoder:   encoder,
		vectors:   vectors,
		items:     items,
		logger:    logger,
		maxTurns:  defaultMaxTurns,
	}
}

// WithMaxTurns overrides the turn budget.
func (s *Service) WithMaxTurns(turns int) *Service {
	if turns > 0 {
		s.maxTurns = turns
	}
	return s
}

// WithRequestTimeout caps the wall-clock time of a whole run.
func (s *Service) WithRequestTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Run drives the agent loop for one user message. History carries prior turns
// verbatim; a system message is seeded only when the history does not already
// contain one. Run never returns an error: upstream failures degrade to a
// fallback reply.
func (s *Service) Run(ctx context.Context, userMessage string, history []Message) Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	msgs := make([]Message, 0, len(history)+2)
	if !hasSystemMessage(history) {
		msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: "user", Content: userMessage})

	var lastItems []domain.Item
	tools := toolSpecs()

	turn := 0
	for ; turn < s.maxTurns; turn++ {
		// A request-level timeout aborts at the turn boundary; an in-flight
		// tool lookup is left to finish since lookups are idempotent reads.
		if ctx.Err() != nil {
			s.logger.Warn("agent run aborted at turn boundary", zap.Int("turn", turn), zap.Error(ctx.Err()))
			msgs = append(msgs, Message{Role: "assistant", Content: fallbackReply})
			return s.finish(UpstreamFailure, fallbackReply, msgs, lastItems, turn)
		}

		comp, err := s.completer.Complete(ctx, msgs, tools)
		if err != nil {
			s.logger.Warn("reasoning service failed", zap.Int("turn", turn), zap.Error(err))
			msgs = append(msgs, Message{Role: "assistant", Content: fallbackReply})
			return s.finish(UpstreamFailure, fallbackReply, msgs, lastItems, turn)
		}

		if len(comp.ToolCalls) == 0 {
			msgs = append(msgs, Message{Role: "assistant", Content: comp.Content})
			return s.finish(Replied, comp.Content, msgs, lastItems, turn+1)
		}

		assistant := Message{Role: "assistant", Content: comp.Content}
		for _, tc := range comp.ToolCalls {
			assistant.ToolCalls = append(assistant.ToolCalls, MessageCall{
				ID:        tc.ID,
				Name:      tc.Name,
				Arguments: tc.Arguments,
			})
		}
		msgs = append(msgs, assistant)

		// Tool results are appended in the order the calls were issued.
		for _, tc := range comp.ToolCalls {
			content, items := s.dispatch(ctx, parseToolCall(tc.Name, tc.Arguments))
			if items != nil {
				lastItems = items
			}
			msgs = append(msgs, Message{
				Role:       "tool",
				Content:    content,
				Name:       tc.Name,
				ToolCallID: tc.ID,
			})
		}
	}

	msgs = append(msgs, Message{Role: "assistant", Content: fallbackReply})
	return s.finish(BudgetExhausted, fallbackReply, msgs, lastItems, turn)
}

func (s *Service) finish(t Termination, reply string, msgs []Message, items []domain.Item, turns int) Outcome {
	metrics.AgentRunsTotal.WithLabelValues(t.String()).Inc()
	metrics.AgentTurns.Observe(float64(turns))
	return Outcome{Termination: t, Reply: reply, History: msgs, Items: items}
}

// dispatch executes one parsed tool call. The second return value is non-nil
// only for an executed search_similar_items call, signalling a lastItems
// update (an empty search result still counts).
func (s *Service) dispatch(ctx context.Context, call parsedCall) (string, []domain.Item) {
	switch c := call.(type) {
	case FindCategoryCall:
		candidates, err := s.catalog.FindCategories(ctx, c.Keyword)
		if err != nil {
			s.logger.Warn("category lookup failed", zap.String("keyword", c.Keyword), zap.Error(err))
			metrics.AgentToolCallsTotal.WithLabelValues(c.toolName(), "error").Inc()
			return "category lookup failed", nil
		}
		metrics.AgentToolCallsTotal.WithLabelValues(c.toolName(), "ok").Inc()
		return marshalToolResult(candidates), nil

	case FindBrandCall:
		brands, err := s.catalog.FindBrands(ctx, c.Keyword)
		if err != nil {
			s.logger.Warn("brand lookup failed", zap.String("keyword", c.Keyword), zap.Error(err))
			metrics.AgentToolCallsTotal.WithLabelValues(c.toolName(), "error").Inc()
			return "brand lookup failed", nil
		}
		metrics.AgentToolCallsTotal.WithLabelValues(c.toolName(), "ok").Inc()
		return marshalToolResult(brands), nil

	case SearchSimilarCall:
		items, err := s.searchSimilar(ctx, c)
		if err != nil {
			s.logger.Warn("similarity search failed", zap.Error(err))
			metrics.AgentToolCallsTotal.WithLabelValues(c.toolName(), "error").Inc()
			return "similarity search failed", nil
		}
		metrics.AgentToolCallsTotal.WithLabelValues(c.toolName(), "ok").Inc()
		if items == nil {
			items = []domain.Item{}
		}
		return marshalToolResult(itemSummaries(items)), items

	case SkippedCall:
		s.logger.Warn("tool call skipped", zap.String("tool", c.Name), zap.String("reason", c.Reason))
		metrics.AgentToolCallsTotal.WithLabelValues(c.Name, "skipped").Inc()
		return "skipped: " + c.Reason, nil

	case UnknownCall:
		s.logger.Warn("unknown tool requested", zap.String("tool", c.Name))
		metrics.AgentToolCallsTotal.WithLabelValues(c.Name, "unknown").Inc()
		return "", nil

	default:
		return "", nil
	}
}

// searchSimilar encodes the described item and ranks the corpus. An empty
// corpus returns an empty list without touching the encoder; an unavailable
// encoding degrades to an empty list too.
func (s *Service) searchSimilar(ctx context.Context, c SearchSimilarCall) ([]domain.Item, error) {
	corpus, err := s.vectors.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vector corpus: %w", err)
	}
	if len(corpus) == 0 {
		return []domain.Item{}, nil
	}

	enc := s.encoder.EncodeItem(ctx, domain.ItemAttributes{
		Title:       c.Name,
		Price:       c.Price,
		CategoryID:  &c.CategoryID,
		ConditionID: &c.ConditionID,
	})
	if !enc.Available() {
		return []domain.Item{}, nil
	}

	ids := ranker.Rank(enc.Vector(), corpus, similarTopK)
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}

	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate items: %w", err)
	}
	return items, nil
}

func hasSystemMessage(history []Message) bool {
	for _, m := range history {
		if m.Role == "system" {
			return true
		}
	}
	return false
}

type itemSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id,omitempty"`
	BrandID     int64   `json:"brand_id,omitempty"`
	ConditionID int64   `json:"condition_id,omitempty"`
}

func itemSummaries(items []domain.Item) []itemSummary {
	out := make([]itemSummary, len(items))
	for i, it := range items {
		out[i] = itemSummary{
			ID:          it.ID,
			Title:       it.Title,
			Price:       it.Price,
			CategoryID:  it.CategoryID,
			BrandID:     it.BrandID,
			ConditionID: it.ConditionID,
		}
	}
	return out
}

func marshalToolResult(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
