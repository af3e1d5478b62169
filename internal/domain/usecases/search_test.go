package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

func TestFuzzySearch_EmptyIndex(t *testing.T) {
	s := NewFuzzySearcher()

	_, ok := s.Search("anything", &entities.Index{})
	assert.False(t, ok)

	_, ok = s.Search("anything", nil)
	assert.False(t, ok)
}

func TestFuzzySearch_FindsRelevantEntry(t *testing.T) {
	s := NewFuzzySearcher()
	index := BuildIndex(testKB())

	match, ok := s.Search("what is a reference", index)
	require.True(t, ok)
	assert.Equal(t, "references", match.Key)
	assert.GreaterOrEqual(t, match.Score, 72.0)
}

func TestFuzzySearch_Deterministic(t *testing.T) {
	s := NewFuzzySearcher()
	index := BuildIndex(testKB())

	first, ok := s.Search("tell me about polymorphism", index)
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		again, ok := s.Search("tell me about polymorphism", index)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestFuzzySearch_TieBreakFirstEntryWins(t *testing.T) {
	s := NewFuzzySearcher()
	// Identical search text guarantees identical scores; the earlier entry
	// must win.
	index := &entities.Index{Entries: []entities.FlatEntry{
		{Key: "first", SearchText: "identical entry text", Answer: "answer one"},
		{Key: "second", SearchText: "identical entry text", Answer: "answer two"},
	}}

	match, ok := s.Search("identical entry text", index)
	require.True(t, ok)
	assert.Equal(t, "first", match.Key)
	assert.Equal(t, "answer one", match.Answer)
}

func TestFuzzySearch_OverlapBonusCapped(t *testing.T) {
	s := NewFuzzySearcher()
	text := "one two three four five six seven eight nine ten eleven twelve"
	index := &entities.Index{Entries: []entities.FlatEntry{
		{Key: "k", SearchText: text, Answer: "a"},
	}}

	match, ok := s.Search(text, index)
	require.True(t, ok)
	// Perfect similarity is 100; the overlap bonus adds at most 8 even with
	// twelve shared words.
	assert.Equal(t, 108.0, match.Score)
}

func TestFuzzySearch_SynonymEnrichmentHelps(t *testing.T) {
	s := NewFuzzySearcher()
	index := &entities.Index{Entries: []entities.FlatEntry{
		{Key: "file io", SearchText: Normalize("file io input output file streams"), Answer: "io answer"},
		{Key: "loops", SearchText: Normalize("loops for while iteration"), Answer: "loop answer"},
	}}

	match, ok := s.Search("how does io work", index)
	require.True(t, ok)
	assert.Equal(t, "file io", match.Key)
}

func TestFuzzySearch_NeverNegative(t *testing.T) {
	s := NewFuzzySearcher()
	index := BuildIndex(testKB())

	match, ok := s.Search("zzz qqq xxx", index)
	require.True(t, ok)
	assert.GreaterOrEqual(t, match.Score, 0.0)
}
