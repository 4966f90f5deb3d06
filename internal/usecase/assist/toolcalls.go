package assist

import (
	"encoding/json"
	"fmt"
)

// parsedCall is a validated tool invocation. Exactly one variant per known
// tool, plus explicit variants for malformed and unrecognized calls, so
// dispatch never does best-effort field access on raw JSON.
type parsedCall interface {
	toolName() string
}

// FindCategoryCall resolves a category keyword.
type FindCategoryCall struct {
	Keyword string
}

func (FindCategoryCall) toolName() string { return toolFindCategory }

// FindBrandCall resolves a brand keyword.
type FindBrandCall struct {
	Keyword string
}

func (FindBrandCall) toolName() string { return toolFindBrand }

// SearchSimilarCall runs a similarity search over the item corpus.
type SearchSimilarCall struct {
	CategoryID  int64
	Name        string
	Price       float64
	ConditionID int64
}

func (SearchSimilarCall) toolName() string { return toolSearchSimilar }

// SkippedCall marks a known tool whose arguments failed validation. The call
// is not executed; the reason is surfaced in its tool message.
type SkippedCall struct {
	Name   string
	Reason string
}

func (c SkippedCall) toolName() string { return c.Name }

// UnknownCall marks a tool name we do not recognize. Answered with empty
// content so newer reasoning models degrade instead of wedging the loop.
type UnknownCall struct {
	Name string
}

func (c UnknownCall) toolName() string { return c.Name }

// parseToolCall validates raw arguments against the named tool's schema and
// returns the matching typed variant. Validation failures yield SkippedCall,
// never an error: one bad call must not abort the turn.
func parseToolCall(name, arguments string) parsedCall {
	switch name {
	case toolFindCategory:
		return parseKeywordCall(name, arguments, func(kw string) parsedCall {
			return FindCategoryCall{Keyword: kw}
		})
	case toolFindBrand:
		return parseKeywordCall(name, arguments, func(kw string) parsedCall {
			return FindBrandCall{Keyword: kw}
		})
	case toolSearchSimilar:
		return parseSearchSimilar(arguments)
	default:
		return UnknownCall{Name: name}
	}
}

func parseKeywordCall(name, arguments string, build func(string) parsedCall) parsedCall {
	var args struct {
		Keyword *string `json:"keyword"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return SkippedCall{Name: name, Reason: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if args.Keyword == nil || *args.Keyword == "" {
		return SkippedCall{Name: name, Reason: "missing required argument: keyword"}
	}
	return build(*args.Keyword)
}

func parseSearchSimilar(arguments string) parsedCall {
	var args struct {
		CategoryID  *int64  `json:"category_id"`
		Name        *string `json:"name"`
		Price       float64 `json:"price"`
		ConditionID int64   `json:"condition_id"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return SkippedCall{Name: toolSearchSimilar, Reason: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if args.CategoryID == nil {
		return SkippedCall{Name: toolSearchSimilar, Reason: "missing required argument: category_id"}
	}
	if args.Name == nil || *args.Name == "" {
		return SkippedCall{Name: toolSearchSimilar, Reason: "missing required argument: name"}
	}
	call := SearchSimilarCall{
		CategoryID:  *args.CategoryID,
		Name:        *args.Name,
		Price:       args.Price,
		ConditionID: args.ConditionID,
	}
	if call.Price < 0 {
		call.Price = 0
	}
	if call.ConditionID == 0 {
		call.ConditionID = 1
	}
	return call
}
