package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
)

func geminiTestAdapter(url string) *GeminiAdapter {
	return NewGeminiAdapter(GeminiConfig{APIKey: "test-key", BaseURL: url, Model: "test-model"})
}

func TestGemini_GenerateSuccess(t *testing.T) {
	var gotBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing API key header")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]string{{"text": "RAII ties resource lifetime to scope."}},
				}},
			},
		})
	}))
	defer server.Close()

	adapter := geminiTestAdapter(server.URL)
	history := []entities.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	res := adapter.Generate(context.Background(), "what is raii", history, "be helpful")

	if res.Kind != ports.ResultSuccess {
		t.Fatalf("expected success, got %v (%s)", res.Kind, res.Detail)
	}
	if res.Text != "RAII ties resource lifetime to scope." {
		t.Errorf("unexpected text: %q", res.Text)
	}

	// History plus current query, with the assistant role mapped to "model".
	if len(gotBody.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(gotBody.Contents))
	}
	if gotBody.Contents[1].Role != "model" {
		t.Errorf("assistant turn should map to role %q, got %q", "model", gotBody.Contents[1].Role)
	}
	if gotBody.Contents[2].Parts[0].Text != "what is raii" {
		t.Errorf("query must be the final content")
	}
	if gotBody.SystemInstruction == nil || gotBody.SystemInstruction.Parts[0].Text != "be helpful" {
		t.Errorf("system instruction not forwarded")
	}
}

func TestGemini_OverloadedIsTransient(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		res := geminiTestAdapter(server.URL).Generate(context.Background(), "q", nil, "")
		if res.Kind != ports.ResultTransient {
			t.Errorf("status %d: expected transient, got %v", status, res.Kind)
		}
		server.Close()
	}
}

func TestGemini_AuthAndBadRequestAreFatal(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"denied"}}`))
		}))

		res := geminiTestAdapter(server.URL).Generate(context.Background(), "q", nil, "")
		if res.Kind != ports.ResultFatal {
			t.Errorf("status %d: expected fatal, got %v", status, res.Kind)
		}
		if res.Detail == "" {
			t.Errorf("status %d: fatal result should carry detail", status)
		}
		server.Close()
	}
}

func TestGemini_NoCandidatesIsSoftSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	res := geminiTestAdapter(server.URL).Generate(context.Background(), "q", nil, "")
	if res.Kind != ports.ResultSuccess {
		t.Fatalf("expected soft success, got %v", res.Kind)
	}
	if res.Text != "" {
		t.Errorf("expected empty text, got %q", res.Text)
	}
}

func TestGemini_NotConfigured(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	adapter := NewGeminiAdapter(GeminiConfig{BaseURL: server.URL})
	res := adapter.Generate(context.Background(), "q", nil, "")

	if res.Kind != ports.ResultNotConfigured {
		t.Fatalf("expected not configured, got %v", res.Kind)
	}
	if called {
		t.Error("unconfigured provider must not make network calls")
	}
}

func TestGemini_TransportErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	res := geminiTestAdapter(server.URL).Generate(context.Background(), "q", nil, "")
	if res.Kind != ports.ResultFatal {
		t.Fatalf("expected fatal on transport error, got %v", res.Kind)
	}
}

func TestGemini_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"models/gemini-2.0-flash"},{"name":"models/gemini-1.5-pro"}]}`))
	}))
	defer server.Close()

	models, err := geminiTestAdapter(server.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models failed: %v", err)
	}
	if len(models) != 2 || models[0] != "models/gemini-2.0-flash" {
		t.Errorf("unexpected models: %v", models)
	}
}

func TestGemini_Defaults(t *testing.T) {
	adapter := NewGeminiAdapter(GeminiConfig{})
	if adapter.baseURL != "https://generativelanguage.googleapis.com" {
		t.Error("should default to the public endpoint")
	}
	if adapter.model == "" {
		t.Error("should default the model")
	}
	if adapter.Configured() {
		t.Error("no key means not configured")
	}
}
