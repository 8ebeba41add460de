package usecase

import (
	"strings"

	"github.com/platecost/backend/internal/domain"
)

// derivative cost scaling for alias rules
const halfCostBasis = 0.5

// CatalogMatcher resolves free-text ingredient names against a price catalog.
// Matching is pure and deterministic: no side effects, no network calls, and
// the same catalog snapshot always yields the same entry.
type CatalogMatcher struct{}

// NewCatalogMatcher creates a catalog matcher
func NewCatalogMatcher() *CatalogMatcher {
	return &CatalogMatcher{}
}

// Match resolves an ingredient name to at most one catalog entry, trying in
// strict order: exact key match, alias/derivative rules, catalog key
// contained in the name, then catalog key containing the name's first word.
// The ordering guarantees the most specific match wins - "olive oil" can
// never be shadowed by a generic "oil" key. A nil Entry is a valid terminal
// state, not an error.
func (m *CatalogMatcher) Match(name string, catalog domain.PriceCatalog) domain.MatchResult {
	normalized := NormalizeIngredientName(name)
	if normalized == "" {
		return domain.MatchResult{Confidence: domain.ConfidenceLow, Reason: domain.MatchFallback}
	}

	// (a) exact case-insensitive match
	if entry, ok := catalog.Lookup(normalized); ok {
		return domain.MatchResult{
			Entry:      entry,
			Confidence: domain.ConfidenceHigh,
			Reason:     domain.MatchExact,
			CostScale:  1,
		}
	}

	// (b) alias and derivative rules for common cooking transformations
	if result, ok := m.matchAlias(normalized, catalog); ok {
		return result
	}

	// (c) substring containment: catalog key inside the ingredient name
	if entry, ok := bestKeyMatch(catalog, func(key string) bool {
		return strings.Contains(normalized, key)
	}); ok {
		return domain.MatchResult{
			Entry:      entry,
			Confidence: domain.ConfidenceMedium,
			Reason:     domain.MatchSubstring,
			CostScale:  1,
		}
	}

	// (d) reverse containment: catalog key contains the name's first word
	firstWord := strings.Fields(normalized)[0]
	if len(firstWord) > 2 {
		if entry, ok := bestKeyMatch(catalog, func(key string) bool {
			return strings.Contains(key, firstWord)
		}); ok {
			return domain.MatchResult{
				Entry:      entry,
				Confidence: domain.ConfidenceMedium,
				Reason:     domain.MatchSubstring,
				CostScale:  1,
			}
		}
	}

	return domain.MatchResult{Confidence: domain.ConfidenceLow, Reason: domain.MatchFallback}
}

// matchAlias applies derivative rules: egg parts cost half an egg, juices
// fall back to the whole fruit, garlic preparations share the garlic key.
func (m *CatalogMatcher) matchAlias(normalized string, catalog domain.PriceCatalog) (domain.MatchResult, bool) {
	aliasResult := func(key string, scale float64) (domain.MatchResult, bool) {
		entry, ok := catalog.Lookup(key)
		if !ok {
			return domain.MatchResult{}, false
		}
		return domain.MatchResult{
			Entry:      entry,
			Confidence: domain.ConfidenceMedium,
			Reason:     domain.MatchAlias,
			CostScale:  scale,
		}, true
	}

	switch {
	case strings.Contains(normalized, "egg yolk"), strings.Contains(normalized, "egg white"):
		return aliasResult("egg", halfCostBasis)

	case strings.HasSuffix(normalized, " juice"):
		fruit := strings.TrimSuffix(normalized, " juice")
		return aliasResult(fruit, 1)

	case strings.Contains(normalized, "garlic"):
		return aliasResult("garlic", 1)
	}

	return domain.MatchResult{}, false
}

// bestKeyMatch scans catalog keys with the given predicate and picks the
// longest matching key, breaking ties lexicographically for determinism.
func bestKeyMatch(catalog domain.PriceCatalog, matches func(string) bool) (*domain.CatalogEntry, bool) {
	var bestKey string
	for _, key := range catalog.Keys() {
		if !matches(key) {
			continue
		}
		if len(key) > len(bestKey) || (len(key) == len(bestKey) && key < bestKey) {
			bestKey = key
		}
	}
	if bestKey == "" {
		return nil, false
	}
	return catalog.Lookup(bestKey)
}
