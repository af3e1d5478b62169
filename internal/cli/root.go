// Package cli implements the chatbot CLI commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijayhiremath01/ChatBot/internal/adapters/kb"
	"github.com/vijayhiremath01/ChatBot/internal/adapters/llm"
	"github.com/vijayhiremath01/ChatBot/internal/config"
	"github.com/vijayhiremath01/ChatBot/internal/domain/usecases"
	"github.com/vijayhiremath01/ChatBot/internal/logging"
)

var (
	configPath string
	debugFlag  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Conversational query router over a local knowledge base",
	Long: "chatbot answers free-text questions from a static knowledge base via fuzzy matching,\n" +
		"handles small talk directly, and falls back to an external LLM provider when needed.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "chatbot.yaml", "Config file path")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(askCmd)
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if debugFlag {
		cfg.Logging.Debug = true
	}
	logger, err := logging.New(cfg.Logging.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("building logger: %w", err)
	}
	return cfg, logger, nil
}

// service bundles the wired resolution pipeline.
type service struct {
	resolver *usecases.Resolver
	holder   *kb.IndexHolder
	source   *kb.JSONSource // nil when backed by SQLite
	gemini   *llm.GeminiAdapter
	cleanup  func()
}

// buildService wires the pipeline from config: knowledge source, index
// holder, provider adapters, dispatcher and resolver.
func buildService(ctx context.Context, cfg config.Config, logger *zap.Logger) (*service, error) {
	svc := &service{cleanup: func() {}}

	var base *kb.IndexHolder
	if cfg.Knowledge.SQLitePath != "" {
		source, err := kb.NewSQLiteSource(cfg.Knowledge.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening knowledge database: %w", err)
		}
		svc.cleanup = func() { source.Close() }
		data, err := source.Load(ctx)
		if err != nil {
			source.Close()
			return nil, fmt.Errorf("loading knowledge database: %w", err)
		}
		base = kb.NewIndexHolder(usecases.BuildIndex(data))
	} else {
		svc.source = kb.NewJSONSource(cfg.Knowledge.Path, logger)
		data, err := svc.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading knowledge file: %w", err)
		}
		base = kb.NewIndexHolder(usecases.BuildIndex(data))
	}
	svc.holder = base

	svc.gemini = llm.NewGeminiAdapter(llm.GeminiConfig{
		APIKey:  cfg.Providers.Gemini.APIKey,
		BaseURL: cfg.Providers.Gemini.BaseURL,
		Model:   cfg.Providers.Gemini.Model,
		Timeout: cfg.Providers.Gemini.Timeout,
	})
	openrouter := llm.NewOpenRouterAdapter(llm.OpenRouterConfig{
		APIKey:  cfg.Providers.OpenRouter.APIKey,
		BaseURL: cfg.Providers.OpenRouter.BaseURL,
		Model:   cfg.Providers.OpenRouter.Model,
		Timeout: cfg.Providers.OpenRouter.Timeout,
	})

	dispatcher := usecases.NewLLMDispatcher(svc.gemini, openrouter, cfg.SystemPrompt, logger)
	svc.resolver = usecases.NewResolver(
		usecases.DefaultIntentRules(),
		usecases.NewFuzzySearcher(),
		svc.holder,
		dispatcher,
		cfg.Search.Threshold,
		logger,
	)
	return svc, nil
}
