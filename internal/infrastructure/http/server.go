// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vijayhiremath01/ChatBot/internal/domain/entities"
	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
	"github.com/vijayhiremath01/ChatBot/internal/domain/usecases"
	"github.com/vijayhiremath01/ChatBot/internal/markdown"
)

// providerCallTimeout mirrors the provider adapters' default HTTP client
// timeout.
const providerCallTimeout = 60 * time.Second

// writeTimeout must outlast the dispatcher's slowest path (retried primary
// attempts with backoff, then the fallback call) or the final answer gets cut
// off mid-write.
var writeTimeout = usecases.MaxDispatchDuration(providerCallTimeout) + 15*time.Second

// Server is the HTTP server for the chat API.
type Server struct {
	resolver      *usecases.Resolver
	models        ports.ModelLister
	logger        *zap.Logger
	addr          string
	stripMarkdown bool
}

// NewServer creates a new HTTP server. models may be nil when the primary
// provider is unconfigured; the /models endpoint then reports an error.
func NewServer(resolver *usecases.Resolver, models ports.ModelLister, addr string, stripMarkdown bool, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		resolver:      resolver,
		models:        models,
		logger:        logger,
		addr:          addr,
		stripMarkdown: stripMarkdown,
	}
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
	}

	s.logger.Info("chat server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler builds the route table with middleware applied. Exposed for
// httptest use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/models", s.handleModels)
	mux.HandleFunc("/api/health", s.handleHealth)
	return corsMiddleware(s.loggingMiddleware(mux))
}

// handleAsk resolves one chat query. An empty query is the only client
// error; everything else answers 200 with some text.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	// A malformed or missing body resolves to an empty query below,
	// mirroring the single validation rule.
	var req entities.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = entities.ChatRequest{}
	}

	resolution, err := s.resolver.Resolve(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecases.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request. 'query' field is required."})
			return
		}
		// No other error class exists in the core; keep the always-answer
		// policy if one ever appears.
		s.logger.Error("resolution failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if s.stripMarkdown && resolution.Meta.Type == entities.ResolutionLLMFallback {
		resolution.Answer = markdown.Strip(resolution.Answer)
	}

	writeJSON(w, http.StatusOK, resolution)
}

// handleModels proxies the primary provider's list-models API.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}
	if s.models == nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "model listing unavailable: primary provider not configured"})
		return
	}

	names, err := s.models.ListModels(r.Context())
	if err != nil {
		s.logger.Warn("model listing failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"models": names})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
