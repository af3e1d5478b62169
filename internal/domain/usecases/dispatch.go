// Package usecases - dispatch.go routes generation requests across providers.
package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
)

const (
	// defaultMaxAttempts bounds the primary provider's attempt loop.
	// The secondary is always called exactly once.
	defaultMaxAttempts = 3

	// backoffUnit scales the linear backoff: attempt N sleeps 2*N units.
	backoffUnit = time.Second

	// emptyCompletionText stands in for a clean provider response that
	// carried no text field. A known upstream edge case, not an error.
	emptyCompletionText = "The model returned an empty response. Please try rephrasing your question."

	// noProviderText is returned when every provider is unconfigured.
	noProviderText = "I can answer greetings and knowledge-base topics, but no language model provider is configured for anything else. Set GEMINI_API_KEY or OPENROUTER_API_KEY to enable full answers."
)

// LLMDispatcher implements ports.Dispatcher with bounded retries on the
// primary provider and single-shot fallback to the secondary.
type LLMDispatcher struct {
	primary      ports.Provider
	secondary    ports.Provider
	systemPrompt string
	maxAttempts  int
	sleep        func(time.Duration)
	logger       *zap.Logger
}

// NewLLMDispatcher creates a dispatcher over the two providers.
// systemPrompt is the persona/formatting instruction sent with every request.
func NewLLMDispatcher(primary, secondary ports.Provider, systemPrompt string, logger *zap.Logger) *LLMDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMDispatcher{
		primary:      primary,
		secondary:    secondary,
		systemPrompt: systemPrompt,
		maxAttempts:  defaultMaxAttempts,
		sleep:        time.Sleep,
		logger:       logger,
	}
}

// Dispatch tries the primary provider with retries on transient overload,
// then falls back to the secondary on any non-success. It always returns
// answer text; total provider failure yields an explanatory string, never an
// error. The label names the provider that produced the text.
func (d *LLMDispatcher) Dispatch(ctx context.Context, query string, history []entities.ChatMessage) (string, string) {
	res := d.callPrimary(ctx, query, history)
	if res.Kind == ports.ResultSuccess {
		return successText(res), d.primary.Name()
	}

	d.logger.Warn("primary provider failed, falling back",
		zap.String("primary", d.primary.Name()),
		zap.String("detail", res.Detail))

	// Secondary gets exactly one attempt; its result is final.
	fb := d.secondary.Generate(ctx, query, history, d.systemPrompt)
	switch fb.Kind {
	case ports.ResultSuccess:
		return successText(fb), d.secondary.Name()
	case ports.ResultNotConfigured:
		if res.Kind == ports.ResultNotConfigured {
			d.logger.Warn("no provider configured")
			return noProviderText, "none"
		}
		// The primary ran and failed; the unavailability message must say
		// so instead of claiming nothing is configured.
		d.logger.Error("primary failed with no fallback configured",
			zap.String("primary", d.primary.Name()),
			zap.String("detail", res.Detail))
		return apologyText(res.Detail), d.primary.Name()
	default:
		d.logger.Error("all providers exhausted",
			zap.String("secondary", d.secondary.Name()),
			zap.String("detail", fb.Detail))
		return apologyText(fb.Detail), d.secondary.Name()
	}
}

func apologyText(detail string) string {
	return "Sorry, I couldn't reach a language model right now. Please try again in a moment. (" + detail + ")"
}

// callPrimary runs the bounded attempt loop. Attempts are 1-indexed; a
// transient failure on attempt N sleeps 2*N units before the next attempt.
// Exhausted retries come back as a transient result so the fallback path can
// tell them apart from a fatal error in logs.
func (d *LLMDispatcher) callPrimary(ctx context.Context, query string, history []entities.ChatMessage) ports.ProviderResult {
	var last ports.ProviderResult
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		last = d.primary.Generate(ctx, query, history, d.systemPrompt)
		switch last.Kind {
		case ports.ResultSuccess, ports.ResultFatal, ports.ResultNotConfigured:
			return last
		case ports.ResultTransient:
			if attempt == d.maxAttempts {
				last.Detail = "retries exhausted: " + last.Detail
				return last
			}
			wait := time.Duration(2*attempt) * backoffUnit
			d.logger.Debug("provider overloaded, backing off",
				zap.String("provider", d.primary.Name()),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait))
			d.sleep(wait)
		}
	}
	return last
}

// MaxDispatchDuration bounds one full dispatch in wall-clock time: every
// primary attempt and backoff sleep plus the single fallback call, with each
// call bounded by providerTimeout. Serving layers size their write deadlines
// from this so the slowest path still delivers its answer.
func MaxDispatchDuration(providerTimeout time.Duration) time.Duration {
	// Backoff sleeps 2+4+...+2*(attempts-1) units.
	backoff := time.Duration(defaultMaxAttempts*(defaultMaxAttempts-1)) * backoffUnit
	return time.Duration(defaultMaxAttempts+1)*providerTimeout + backoff
}

func successText(res ports.ProviderResult) string {
	if res.Text == "" {
		return emptyCompletionText
	}
	return res.Text
}
