package pipeline

import (
	"strings"

	"orderreg/internal"
	"orderreg/internal/util"
)

// substringScore is the fixed score for a near-exact phrase match: one
// normalized string containing the other. Not a true edit distance.
const substringScore = 0.9

// Matcher resolves free-text descriptions against the catalog. A linear scan
// over items and aliases keeps the tie-break exact: on equal scores the
// first-seen alias (catalog order, then alias order within an item) wins.
type Matcher struct {
	items []internal.CatalogItem
}

func NewMatcher(items []internal.CatalogItem) *Matcher {
	return &Matcher{items: items}
}

// Match returns the best catalog SKU for the description and its confidence.
// Nil SKU with score 0 means no alias scored above zero. Pure function of
// (description, catalog): no randomness, no history.
func (m *Matcher) Match(description string) (*string, float64) {
	text := util.Normalize(description)

	var bestSKU *string
	bestScore := 0.0
	for _, item := range m.items {
		aliases := make([]string, 0, len(item.Synonyms)+1)
		aliases = append(aliases, item.Name)
		aliases = append(aliases, item.Synonyms...)

		for _, alias := range aliases {
			aliasNorm := util.Normalize(alias)
			var score float64
			if strings.Contains(text, aliasNorm) || strings.Contains(aliasNorm, text) {
				score = substringScore
			} else {
				score = tokenOverlap(aliasNorm, text)
			}
			if score > bestScore {
				bestScore = score
				bestSKU = util.StringPtr(item.SKUID)
			}
		}
	}

	return bestSKU, bestScore
}

// tokenOverlap is Jaccard similarity over whitespace token sets: zero when
// either side has no tokens.
func tokenOverlap(a, b string) float64 {
	aTokens := util.Tokenize(a)
	bTokens := util.Tokenize(b)
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}

	aSet := make(map[string]struct{}, len(aTokens))
	for _, t := range aTokens {
		aSet[t] = struct{}{}
	}

	intersection := 0
	union := len(aSet)
	seen := make(map[string]struct{}, len(bTokens))
	for _, t := range bTokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := aSet[t]; ok {
			intersection++
		} else {
			union++
		}
	}

	return float64(intersection) / float64(union)
}
