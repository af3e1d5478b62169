// Package usecases - resolve.go is the top-level answer resolution pipeline.
package usecases

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
)

// DefaultKBThreshold is the minimum fuzzy score for a knowledge base hit.
// Empirically tuned; overridable through the resolver constructor.
const DefaultKBThreshold = 72.0

// ErrEmptyQuery is the only validation failure the core surfaces.
var ErrEmptyQuery = errors.New("query is empty")

// Resolver decides how a query gets answered: small-talk intent first, then
// fuzzy knowledge base lookup, then LLM dispatch. The order is a cost and
// latency gradient - cheapest, most deterministic checks first.
type Resolver struct {
	rules      []IntentRule
	searcher   ports.Searcher
	index      ports.IndexSource
	dispatcher ports.Dispatcher
	threshold  float64
	logger     *zap.Logger
}

// NewResolver creates a Resolver with injected collaborators.
// A non-positive threshold selects DefaultKBThreshold.
func NewResolver(
	rules []IntentRule,
	searcher ports.Searcher,
	index ports.IndexSource,
	dispatcher ports.Dispatcher,
	threshold float64,
	logger *zap.Logger,
) *Resolver {
	if threshold <= 0 {
		threshold = DefaultKBThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		rules:      rules,
		searcher:   searcher,
		index:      index,
		dispatcher: dispatcher,
		threshold:  threshold,
		logger:     logger,
	}
}

// Resolve produces an answer for the request. Steps are strictly sequential
// and short-circuiting: a matched intent skips the knowledge base, a
// knowledge base hit at or above the threshold skips the LLM.
func (r *Resolver) Resolve(ctx context.Context, req *entities.ChatRequest) (*entities.Resolution, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	// 1. Small talk
	if resp, ok := MatchIntent(r.rules, query); ok {
		return &entities.Resolution{
			Answer: resp,
			Meta:   entities.ResolutionMeta{Type: entities.ResolutionIntent},
		}, nil
	}

	// 2. Fuzzy knowledge lookup
	if match, ok := r.searcher.Search(query, r.index.Current()); ok && match.Score >= r.threshold {
		score := math.Round(match.Score*10) / 10
		r.logger.Debug("knowledge base hit",
			zap.String("key", match.Key),
			zap.Float64("score", score))
		return &entities.Resolution{
			Answer: match.Answer,
			Meta: entities.ResolutionMeta{
				Type:     entities.ResolutionKB,
				MatchKey: match.Key,
				Score:    &score,
			},
		}, nil
	}

	// 3. External model
	answer, provider := r.dispatcher.Dispatch(ctx, query, req.History)
	return &entities.Resolution{
		Answer: answer,
		Meta: entities.ResolutionMeta{
			Type:         entities.ResolutionLLMFallback,
			ProviderUsed: provider,
		},
	}, nil
}
