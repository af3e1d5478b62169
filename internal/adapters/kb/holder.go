package kb

import (
	"sync/atomic"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

// IndexHolder implements ports.IndexSource with an atomically swappable
// index pointer. Readers never block; a reload builds a fresh immutable
// index and swaps it in whole. The zero index is empty, never nil.
type IndexHolder struct {
	current atomic.Pointer[entities.Index]
}

// NewIndexHolder creates a holder seeded with the given index.
func NewIndexHolder(index *entities.Index) *IndexHolder {
	h := &IndexHolder{}
	h.Swap(index)
	return h
}

// Current returns the index to search. Safe for concurrent use.
func (h *IndexHolder) Current() *entities.Index {
	return h.current.Load()
}

// Swap replaces the index. A nil argument installs an empty index so
// readers never observe nil.
func (h *IndexHolder) Swap(index *entities.Index) {
	if index == nil {
		index = &entities.Index{}
	}
	h.current.Store(index)
}
