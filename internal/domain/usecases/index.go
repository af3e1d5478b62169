// Package usecases - index.go flattens the knowledge base into a searchable view.
package usecases

import (
	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

// searchTextAnswerLimit bounds how much of each answer feeds the per-entry
// search text, keeping scoring cost constant per entry.
const searchTextAnswerLimit = 500

// BuildIndex walks the two-level knowledge base and emits one FlatEntry per
// terminal answer. Nested entries get the composite "topic :: subtopic" key.
// Entry order follows the knowledge base's own insertion order; that order is
// what makes scoring tie-breaks deterministic.
func BuildIndex(kb entities.KnowledgeBase) *entities.Index {
	var entries []entities.FlatEntry
	for _, t := range kb.Topics {
		if len(t.Subtopics) > 0 {
			for _, s := range t.Subtopics {
				entries = append(entries, flatEntry(t.Name+" :: "+s.Name, s.Answer))
			}
			continue
		}
		if t.Nested {
			// A mapping with no entries has no leaves to index.
			continue
		}
		entries = append(entries, flatEntry(t.Name, t.Answer))
	}
	return &entities.Index{Entries: entries}
}

func flatEntry(key, answer string) entities.FlatEntry {
	prefix := answer
	if len(prefix) > searchTextAnswerLimit {
		prefix = prefix[:searchTextAnswerLimit]
	}
	return entities.FlatEntry{
		Key:        key,
		SearchText: Normalize(key + " " + prefix),
		Answer:     answer,
	}
}
