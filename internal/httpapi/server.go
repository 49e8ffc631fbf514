package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agency/internal/agents"
	"agency/internal/ollama"
	"agency/pkg/types"
)

// Service defines the inference surface required by the HTTP API layer.
// *ollama.Client satisfies it.
type Service interface {
	Generate(ctx context.Context, prompt, category string, opts ...ollama.GenerateOption) (*types.InferenceResult, error)
	Chat(ctx context.Context, messages []types.ChatMessage, category string) (*types.InferenceResult, error)
	Models() map[string]string
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the gateway router over the inference service and the agent
// registry.
func NewMux(svc Service, reg *agents.Registry) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsConfig.enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsConfig.origins,
			AllowedMethods: corsConfig.methods,
			AllowedHeaders: corsConfig.headers,
		}))
	}
	r.Use(MetricsMiddleware)

	r.Post("/api/generate", handleGenerate(svc))
	r.Post("/api/chat", handleChat(svc))

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.Models()})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		resp := svc.Status()
		if reg != nil {
			resp.Agents = reg.Len()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mountAgentRoutes(r, svc, reg)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleGenerate serves POST /api/generate.
//
// @Summary      Generate a completion
// @Accept       json
// @Produce      json
// @Param        request body types.GenerateRequest true "prompt and task category"
// @Success      200 {object} types.InferenceResult
// @Failure      400 {object} types.ErrorResponse
// @Failure      429 {object} types.ErrorResponse
// @Failure      502 {object} types.InferenceResult
// @Router       /api/generate [post]
func handleGenerate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		logRequestStart(r, lvl, "generate", req.Category)
		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		var opts []ollama.GenerateOption
		if req.System != "" {
			opts = append(opts, ollama.WithSystem(req.System))
		}
		res, err := svc.Generate(ctx, req.Prompt, req.Category, opts...)
		if err != nil {
			status := writeServiceError(w, r, err)
			logRequestEnd(r, lvl, "generate", status, start, err)
			return
		}
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, res)
		logRequestEnd(r, lvl, "generate", status, start, nil)
	}
}

// handleChat serves POST /api/chat.
//
// @Summary      Chat completion
// @Accept       json
// @Produce      json
// @Param        request body types.ChatRequest true "messages and task category"
// @Success      200 {object} types.InferenceResult
// @Failure      400 {object} types.ErrorResponse
// @Failure      429 {object} types.ErrorResponse
// @Failure      502 {object} types.InferenceResult
// @Router       /api/chat [post]
func handleChat(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if len(req.Messages) == 0 {
			writeJSONError(w, http.StatusBadRequest, "messages are required")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		logRequestStart(r, lvl, "chat", req.Category)
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		res, err := svc.Chat(ctx, req.Messages, req.Category)
		if err != nil {
			status := writeServiceError(w, r, err)
			logRequestEnd(r, lvl, "chat", status, start, err)
			return
		}
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, res)
		logRequestEnd(r, lvl, "chat", status, start, nil)
	}
}

// decodeRequest enforces the JSON content type and body cap, then decodes
// into dst. On failure it writes the error response and reports false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
