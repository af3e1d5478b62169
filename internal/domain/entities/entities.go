// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// KnowledgeBase is a two-level mapping from topic (and optional subtopic) to
// canned answer text. It preserves the source's insertion order so that
// downstream scoring tie-breaks stay deterministic across runs.
// Immutable after load.
type KnowledgeBase struct {
	Topics []Topic
}

// Topic is one top-level knowledge base entry. Either Answer is set (terminal
// topic) or Subtopics is non-empty (nested topic), never both. Nested marks
// topics that came from a mapping, so a mapping with no entries is not
// mistaken for a terminal topic with an empty answer.
type Topic struct {
	Name      string
	Answer    string
	Nested    bool
	Subtopics []Subtopic
}

// Subtopic is a nested entry under a topic.
type Subtopic struct {
	Name   string
	Answer string
}

// Empty reports whether the knowledge base has no entries at all.
func (kb KnowledgeBase) Empty() bool {
	return len(kb.Topics) == 0
}

// FlatEntry is one searchable row of the flattened knowledge base index.
// Key is "topic" or "topic :: subtopic". SearchText is the normalized
// concatenation of the key and a bounded answer prefix, precomputed so
// per-query scoring cost stays constant per entry.
type FlatEntry struct {
	Key        string
	SearchText string
	Answer     string
}

// Index is the flattened, queryable view over a KnowledgeBase.
// Built once, read-only afterwards; safe for unsynchronized concurrent reads.
type Index struct {
	Entries []FlatEntry
}

// ScoredMatch is the best-scoring index entry for a query.
// Score is the base similarity in [0,100] plus an overlap bonus capped at +8.
type ScoredMatch struct {
	Key    string
	Answer string
	Score  float64
}

// ChatMessage represents a conversation turn supplied by the caller.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest represents a query with optional conversation context.
type ChatRequest struct {
	Query   string        `json:"query"`
	History []ChatMessage `json:"history,omitempty"`
}

// Resolution types, reported in ResolutionMeta.Type.
const (
	ResolutionIntent      = "intent"
	ResolutionKB          = "kb"
	ResolutionLLMFallback = "llm_fallback"
)

// ResolutionMeta describes how an answer was produced.
type ResolutionMeta struct {
	Type         string   `json:"type"`
	MatchKey     string   `json:"matchKey,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	ProviderUsed string   `json:"providerUsed,omitempty"`
}

// Resolution is the outcome of one answer resolution.
type Resolution struct {
	Answer string         `json:"answer"`
	Meta   ResolutionMeta `json:"meta"`
}
