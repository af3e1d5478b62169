// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
// This follows Dependency Inversion Principle (DIP) strictly.
package ports

import (
	"context"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
)

// ResultKind classifies the outcome of a single provider call attempt.
type ResultKind int

const (
	// ResultSuccess carries generated text (possibly empty when the
	// provider answered cleanly but returned no text field).
	ResultSuccess ResultKind = iota
	// ResultTransient means the provider was overloaded or rate-limited;
	// the attempt may be retried.
	ResultTransient
	// ResultFatal means authentication, bad-request, unexpected-status or
	// transport failure; never retried.
	ResultFatal
	// ResultNotConfigured means the provider has no API key; no network
	// call was made.
	ResultNotConfigured
)

// ProviderResult is the classified outcome of one provider call attempt.
// It drives the dispatcher's retry/fallback control flow; provider failures
// are values here, never Go errors escaping into the orchestrator.
type ProviderResult struct {
	Kind   ResultKind
	Text   string // set on ResultSuccess
	Detail string // failure description on ResultTransient/ResultFatal/ResultNotConfigured
}

// Provider is an external generative-text API. Implementations own their
// request envelope and response-field extraction so a new provider can be
// added without touching dispatcher control flow.
type Provider interface {
	// Name identifies the provider in logs and resolution metadata.
	Name() string

	// Generate sends query plus conversation history with the given system
	// instruction and returns a classified result. It never returns an
	// unclassified error; transport failures surface as ResultFatal.
	Generate(ctx context.Context, query string, history []entities.ChatMessage, system string) ProviderResult
}

// Dispatcher routes one generation request across the configured providers
// with retry and fallback. The returned label names the provider that
// actually produced the text.
type Dispatcher interface {
	Dispatch(ctx context.Context, query string, history []entities.ChatMessage) (answer, providerLabel string)
}

// Searcher scores a query against a flattened knowledge base index.
type Searcher interface {
	// Search returns the best-scoring entry, or ok=false when the index is
	// empty. It is a pure in-memory computation and never fails.
	Search(query string, index *entities.Index) (entities.ScoredMatch, bool)
}

// KnowledgeSource loads the raw knowledge base from external storage.
// Implementations return an empty structure on read/parse failure rather
// than raising into the core.
type KnowledgeSource interface {
	Load(ctx context.Context) (entities.KnowledgeBase, error)
}

// IndexSource yields the current knowledge base index. Implementations may
// atomically swap in a rebuilt index (hot reload); every returned index is
// itself immutable.
type IndexSource interface {
	Current() *entities.Index
}

// ModelLister exposes a provider's list-models API for the passthrough
// endpoint. Peripheral to resolution; only the HTTP layer consumes it.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// FileWatcher monitors a file for changes.
type FileWatcher interface {
	// Watch starts monitoring the path and emits events until ctx ends.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
