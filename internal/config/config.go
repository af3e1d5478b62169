// Package config resolves service configuration from file and environment.
// The resulting Config is built once at startup and passed by reference;
// core logic never reads the environment itself.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSystemPrompt is the persona and formatting instruction sent to
// providers. Configuration data, not logic; swappable per deployment.
const DefaultSystemPrompt = "You are a friendly C++ tutor for a chat application. " +
	"Answer concisely and accurately. Prefer short paragraphs and small code examples. " +
	"Use plain Markdown: fenced code blocks for code, bold for key terms, no HTML."

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	StripMarkdown bool   `yaml:"strip_markdown"`
}

// KnowledgeConfig selects and tunes the knowledge base source.
type KnowledgeConfig struct {
	Path       string `yaml:"path"`        // JSON file source
	SQLitePath string `yaml:"sqlite_path"` // optional SQLite source; wins over Path when set
	Watch      bool   `yaml:"watch"`       // hot-reload the JSON file on change
}

// SearchConfig tunes the fuzzy lookup.
type SearchConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// ProviderConfig holds one provider's credentials and endpoint.
// An absent APIKey means the provider is not configured - that is a valid
// state, not an error.
type ProviderConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ProvidersConfig holds the primary and fallback providers.
type ProvidersConfig struct {
	Gemini     ProviderConfig `yaml:"gemini"`
	OpenRouter ProviderConfig `yaml:"openrouter"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Config is the explicit configuration object for the whole service.
type Config struct {
	Server       ServerConfig    `yaml:"server"`
	Knowledge    KnowledgeConfig `yaml:"knowledge"`
	Search       SearchConfig    `yaml:"search"`
	Providers    ProvidersConfig `yaml:"providers"`
	Logging      LoggingConfig   `yaml:"logging"`
	SystemPrompt string          `yaml:"system_prompt"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server:       ServerConfig{Addr: ":5000"},
		Knowledge:    KnowledgeConfig{Path: "knowledge_base.json"},
		Search:       SearchConfig{Threshold: 72},
		SystemPrompt: DefaultSystemPrompt,
	}
}

// Load builds the Config: defaults, then the YAML file at path (skipped
// silently when path is empty or missing), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Config file is optional.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Search.Threshold <= 0 {
		cfg.Search.Threshold = 72
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("KB_PATH"); v != "" {
		cfg.Knowledge.Path = v
	}
	if v := os.Getenv("KB_SQLITE_PATH"); v != "" {
		cfg.Knowledge.SQLitePath = v
	}
	if v := os.Getenv("KB_WATCH"); v != "" {
		cfg.Knowledge.Watch = parseBool(v, cfg.Knowledge.Watch)
	}
	if v := os.Getenv("KB_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Search.Threshold = f
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Providers.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Providers.Gemini.Model = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.Providers.OpenRouter.APIKey = v
	}
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.Providers.OpenRouter.Model = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Logging.Debug = parseBool(v, cfg.Logging.Debug)
	}
	if v := os.Getenv("STRIP_MARKDOWN"); v != "" {
		cfg.Server.StripMarkdown = parseBool(v, cfg.Server.StripMarkdown)
	}
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
