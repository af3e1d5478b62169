// Package usecases - search.go scores queries against the flattened index.
package usecases

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

// maxOverlapBonus caps the term-overlap bonus added on top of the base
// similarity score.
const maxOverlapBonus = 8

// FuzzySearcher implements ports.Searcher over the flattened index.
type FuzzySearcher struct{}

// NewFuzzySearcher creates a FuzzySearcher.
func NewFuzzySearcher() *FuzzySearcher {
	return &FuzzySearcher{}
}

// Search scores every entry and returns the maximum, or ok=false when the
// index is empty. The base score is max(token-set ratio, partial ratio):
// token-set similarity rewards matching vocabulary regardless of order,
// partial similarity rewards substring containment under length disparity.
// Ties go to the earlier entry in index order. Never fails.
func (s *FuzzySearcher) Search(query string, index *entities.Index) (entities.ScoredMatch, bool) {
	if index == nil || len(index.Entries) == 0 {
		return entities.ScoredMatch{}, false
	}

	q := Enrich(query)
	qWords := uniqueWords(q)

	var best entities.ScoredMatch
	bestScore := -1.0
	for _, entry := range index.Entries {
		base := fuzzy.TokenSetRatio(q, entry.SearchText)
		if partial := fuzzy.PartialRatio(q, entry.SearchText); partial > base {
			base = partial
		}

		overlap := 0
		for w := range uniqueWords(entry.SearchText) {
			if _, ok := qWords[w]; ok {
				overlap++
			}
		}
		if overlap > maxOverlapBonus {
			overlap = maxOverlapBonus
		}

		score := float64(base + overlap)
		if score > bestScore {
			bestScore = score
			best = entities.ScoredMatch{Key: entry.Key, Answer: entry.Answer, Score: score}
		}
	}
	return best, true
}

func uniqueWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		words[w] = struct{}{}
	}
	return words
}
