package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
)

// OpenRouterAdapter implements ports.Provider against the OpenRouter
// chat-completions API (OpenAI-compatible envelope).
type OpenRouterAdapter struct {
	apiKey   string
	baseURL  string
	model    string
	siteName string
	client   *http.Client
}

// OpenRouterConfig holds configuration for the OpenRouter adapter.
type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	SiteName string
	Timeout  time.Duration
}

// NewOpenRouterAdapter creates an OpenRouter adapter. Zero-value config
// fields get sensible defaults; an empty API key yields a NotConfigured
// provider.
func NewOpenRouterAdapter(config OpenRouterConfig) *OpenRouterAdapter {
	if config.BaseURL == "" {
		config.BaseURL = "https://openrouter.ai/api/v1"
	}
	if config.Model == "" {
		config.Model = "meta-llama/llama-3.1-8b-instruct:free"
	}
	if config.SiteName == "" {
		config.SiteName = "ChatBot"
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &OpenRouterAdapter{
		apiKey:   config.APIKey,
		baseURL:  config.BaseURL,
		model:    config.Model,
		siteName: config.SiteName,
		client:   &http.Client{Timeout: config.Timeout},
	}
}

// Name identifies the provider in logs and resolution metadata.
func (a *OpenRouterAdapter) Name() string { return "openrouter" }

// Configured reports whether an API key is present.
func (a *OpenRouterAdapter) Configured() bool { return a.apiKey != "" }

// openRouterMessage is one chat turn in the OpenAI-style envelope.
type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openRouterRequest is the chat-completions request body.
type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

// openRouterResponse is the subset of the chat-completions response we read.
type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Generate sends the query plus history and classifies the outcome using the
// same status taxonomy as the primary adapter.
func (a *OpenRouterAdapter) Generate(ctx context.Context, query string, history []entities.ChatMessage, system string) ports.ProviderResult {
	if !a.Configured() {
		return ports.ProviderResult{
			Kind:   ports.ResultNotConfigured,
			Detail: "openrouter: OPENROUTER_API_KEY not set",
		}
	}

	messages := make([]openRouterMessage, 0, len(history)+2)
	if system != "" {
		messages = append(messages, openRouterMessage{Role: "system", Content: system})
	}
	for _, m := range history {
		messages = append(messages, openRouterMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openRouterMessage{Role: "user", Content: query})

	jsonData, err := json.Marshal(openRouterRequest{Model: a.model, Messages: messages})
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("openrouter: marshaling request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("openrouter: creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("X-Title", a.siteName)

	resp, err := a.client.Do(req)
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("openrouter: request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("openrouter: reading response: %v", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return ports.ProviderResult{
			Kind:   ports.ResultTransient,
			Detail: fmt.Sprintf("openrouter: overloaded (status %d)", resp.StatusCode),
		}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ports.ProviderResult{
			Kind:   ports.ResultFatal,
			Detail: fmt.Sprintf("openrouter: rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	case resp.StatusCode != http.StatusOK:
		return ports.ProviderResult{
			Kind:   ports.ResultFatal,
			Detail: fmt.Sprintf("openrouter: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var orResp openRouterResponse
	if err := json.Unmarshal(body, &orResp); err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("openrouter: parsing response: %v", err)}
	}
	if orResp.Error != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("openrouter: API error: %s", orResp.Error.Message)}
	}
	if len(orResp.Choices) == 0 {
		return ports.ProviderResult{Kind: ports.ResultSuccess, Text: ""}
	}
	return ports.ProviderResult{Kind: ports.ResultSuccess, Text: strings.TrimSpace(orResp.Choices[0].Message.Content)}
}
