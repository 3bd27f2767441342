package httpserver

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/brand-voice/internal/domain/voice"
	"github.com/bryanwahyu/brand-voice/internal/middleware"
)

//go:embed static/index.html
var indexHTML []byte

// Analyzer runs one brand-voice audit.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*voice.AnalysisResult, error)
	Configured() bool
}

type Options struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
}

type Router struct {
	analyzer Analyzer
}

func NewRouter(analyzer Analyzer, opts Options) http.Handler {
	r := &Router{analyzer: analyzer}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(
		chimw.Recoverer,
		middleware.LoggingMiddleware(opts.Logger),
		middleware.MetricsMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}),
	)

	mux.Get("/", handleIndex)
	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/ready", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"model": middleware.CredentialChecker(analyzer.Configured),
	}))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

type errorBody struct {
	Error string `json:"error"`
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			zerolog.Ctx(req.Context()).Error().Err(err).Msg("analyze request failed")
		}
		writeJSON(w, status, errorBody{Error: msg})
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, voice.ErrInvalidInput):
		return http.StatusBadRequest, "URL is required"
	case errors.Is(err, voice.ErrNotConfigured):
		return http.StatusInternalServerError, "API key not configured"
	case errors.Is(err, voice.ErrAnalysisUnavailable):
		return http.StatusInternalServerError, "Could not generate analysis"
	}
	msg := err.Error()
	if msg == "" {
		msg = "Internal server error"
	}
	return http.StatusInternalServerError, msg
}

// POST /api/analyze
// Body: {"url": "<site>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL string `json:"url"`
	}
	// an empty body is a missing url, not a decode failure
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	res, err := r.analyzer.Analyze(req.Context(), body.URL)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
