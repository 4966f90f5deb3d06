// Package catalog implements keyword lookup over the taxonomy: category and
// brand candidates for the agent's resolution tools.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/soko-cloud/semsearch/internal/domain"
)

// maxCandidates caps every keyword lookup result.
const maxCandidates = 10

// searchDepth restricts category matches to the taxonomy level items are
// listed under.
const searchDepth = 2

// Service resolves keywords to taxonomy candidates.
type Service struct {
	categories CategoryReader
	brands     BrandReader
}

// New creates a catalog lookup service.
func New(categories CategoryReader, brands BrandReader) *Service {
	return &Service{categories: categories, brands: brands}
}

// Match tiers: exact beats prefix beats substring; within a tier candidates
// are alphabetical by name.
const (
	tierExact = iota
	tierPrefix
	tierSubstring
	tierNone
)

func matchTier(name, keyword string) int {
	n := strings.ToLower(name)
	k := strings.ToLower(keyword)
	switch {
	case n == k:
		return tierExact
	case strings.HasPrefix(n, k):
		return tierPrefix
	case strings.Contains(n, k):
		return tierSubstring
	default:
		return tierNone
	}
}

// FindCategories returns up to 10 depth-2 categories matching the keyword,
// each with its human-readable path from the taxonomy root.
func (s *Service) FindCategories(ctx context.Context, keyword string) ([]domain.CategoryCandidate, error) {
	all, err := s.categories.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	byID := make(map[int64]domain.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	type match struct {
		tier      int
		candidate domain.CategoryCandidate
	}
	var matches []match
	for _, c := range all {
		if c.Depth != searchDepth {
			continue
		}
		tier := matchTier(c.Name, keyword)
		if tier == tierNone {
			continue
		}
		matches = append(matches, match{
			tier: tier,
			candidate: domain.CategoryCandidate{
				ID:   c.ID,
				Name: c.Name,
				Path: categoryPath(c, byID),
			},
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return matches[i].candidate.Name < matches[j].candidate.Name
	})

	if len(matches) > maxCandidates {
		matches = matches[:maxCandidates]
	}
	out := make([]domain.CategoryCandidate, len(matches))
	for i, m := range matches {
		out[i] = m.candidate
	}
	return out, nil
}

// FindBrands returns up to 10 brands matching the keyword: exact name
// matches first, then prefix matches, then substring matches, each tier
// alphabetical.
func (s *Service) FindBrands(ctx context.Context, keyword string) ([]domain.Brand, error) {
	all, err := s.brands.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	type match struct {
		tier  int
		brand domain.Brand
	}
	var matches []match
	for _, b := range all {
		tier := matchTier(b.Name, keyword)
		if tier == tierNone {
			continue
		}
		matches = append(matches, match{tier: tier, brand: b})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return matches[i].brand.Name < matches[j].brand.Name
	})

	if len(matches) > maxCandidates {
		matches = matches[:maxCandidates]
	}
	out := make([]domain.Brand, len(matches))
	for i, m := range matches {
		out[i] = m.brand
	}
	return out, nil
}

// categoryPath walks parent links up to the root and joins names with " > ".
// A dangling parent id terminates the walk rather than failing the lookup.
func categoryPath(c domain.Category, byID map[int64]domain.Category) string {
	names := []string{c.Name}
	seen := map[int64]struct{}{c.ID: {}}

	for c.ParentID != 0 {
		parent, ok := byID[c.ParentID]
		if !ok {
			break
		}
		if _, cycle := seen[parent.ID]; cycle {
			break
		}
		seen[parent.ID] = struct{}{}
		names = append([]string{parent.Name}, names...)
		c = parent
	}
	return strings.Join(names, " > ")
}
