// Package llm provides generative-text provider adapters.
// Clean Architecture: Adapters implementing ports.Provider.
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

// GeminiAdapter implements ports.Provider against the Google Generative
// Language REST API.
type GeminiAdapter struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// GeminiConfig holds configuration for the Gemini adapter.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewGeminiAdapter creates a Gemini adapter. Zero-value config fields get
// sensible defaults; an empty API key yields a NotConfigured provider.
func NewGeminiAdapter(config GeminiConfig) *GeminiAdapter {
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &GeminiAdapter{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		client:  &http.Client{Timeout: config.Timeout},
	}
}

// Name identifies the provider in logs and resolution metadata.
func (a *GeminiAdapter) Name() string { return "gemini" }

// Configured reports whether an API key is present.
func (a *GeminiAdapter) Configured() bool { return a.apiKey != "" }

// geminiPart is one text fragment of a content block.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiContent is one conversation turn in Gemini's envelope.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate sends the query plus history and classifies the outcome.
// 429 and 503 are transient (retryable); authentication and bad-request
// classes are fatal; a clean response without text is a soft empty success.
func (a *GeminiAdapter) Generate(ctx context.Context, query string, history []entities.ChatMessage, system string) ports.ProviderResult {
	if !a.Configured() {
		return ports.ProviderResult{
			Kind:   ports.ResultNotConfigured,
			Detail: "gemini: GEMINI_API_KEY not set",
		}
	}

	reqBody := geminiRequest{Contents: buildGeminiContents(query, history)}
	if system != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("gemini: marshaling request: %v", err)}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("gemini: creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		// Includes client timeouts; treated as fatal for this attempt.
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("gemini: request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("gemini: reading response: %v", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return ports.ProviderResult{
			Kind:   ports.ResultTransient,
			Detail: fmt.Sprintf("gemini: overloaded (status %d)", resp.StatusCode),
		}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ports.ProviderResult{
			Kind:   ports.ResultFatal,
			Detail: fmt.Sprintf("gemini: rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	case resp.StatusCode != http.StatusOK:
		return ports.ProviderResult{
			Kind:   ports.ResultFatal,
			Detail: fmt.Sprintf("gemini: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("gemini: parsing response: %v", err)}
	}
	if genResp.Error != nil {
		return ports.ProviderResult{Kind: ports.ResultFatal, Detail: fmt.Sprintf("gemini: API error: %s", genResp.Error.Message)}
	}

	var sb strings.Builder
	for _, c := range genResp.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		break // only the first candidate
	}
	return ports.ProviderResult{Kind: ports.ResultSuccess, Text: strings.TrimSpace(sb.String())}
}

// buildGeminiContents maps the caller's history plus the current query to
// Gemini's role/content shape. The assistant role is "model" on this API.
func buildGeminiContents(query string, history []entities.ChatMessage) []geminiContent {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	return append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: query}}})
}

// geminiModelsResponse is the subset of the list-models response we read.
type geminiModelsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels proxies the provider's list-models API for the /models endpoint.
func (a *GeminiAdapter) ListModels(ctx context.Context) ([]string, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", a.baseURL+"/v1beta/models", nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: listing models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
		return nil, fmt.Errorf("gemini: list models returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var listResp geminiModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("gemini: parsing models response: %w", err)
	}

	names := make([]string, 0, len(listResp.Models))
	for _, m := range listResp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
