package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appvoice "github.com/bryanwahyu/brand-voice/internal/application/voice"
	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
	"github.com/bryanwahyu/brand-voice/internal/domain/voice"
	"github.com/bryanwahyu/brand-voice/internal/infra/ai/prompt"
)

// fakeModel replays canned answers; a nil entry in texts means a network error.
type fakeModel struct {
	mu    sync.Mutex
	texts []*string
	calls int
}

func (m *fakeModel) Complete(context.Context, ai.Request) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if i >= len(m.texts) || m.texts[i] == nil {
		return nil, errors.New("dial tcp: connection refused")
	}
	return &ai.Response{Segments: []string{*m.texts[i]}}, nil
}

func text(s string) *string { return &s }

func newTestRouter(model ai.Client) http.Handler {
	svc := appvoice.NewService(model, prompt.Strategies(nil))
	return NewRouter(svc, Options{Logger: zerolog.Nop()})
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestAnalyzeFallbackScenario(t *testing.T) {
	model := &fakeModel{texts: []*string{
		nil,
		text(`{"brand_name":"Example","scores":{"consistency":{"score":80,"reasoning":"ok"}}}`),
	}}

	rec, out := post(t, newTestRouter(model), `{"url":"example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Example", out["brand_name"])
	assert.EqualValues(t, 80, out["voice_score"])
	assert.Equal(t, []any{}, out["strengths"])
	assert.Equal(t, []any{}, out["gaps"])
	assert.Equal(t, []any{}, out["recommendations"])
	assert.Equal(t, voice.DefaultVoiceSummary, out["voice_summary"])
	assert.Equal(t, voice.DefaultPersonality, out["personality"])
	assert.NotContains(t, out, "comparable_company")
	assert.Equal(t, 2, model.calls)
}

func TestAnalyzeMissingURL(t *testing.T) {
	for _, body := range []string{`{"url":""}`, `{}`, `{"url":"   "}`, ``} {
		model := &fakeModel{}
		rec, out := post(t, newTestRouter(model), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, map[string]any{"error": "URL is required"}, out)
		assert.Zero(t, model.calls)
	}
}

func TestAnalyzeNoJSONFromEitherAttempt(t *testing.T) {
	model := &fakeModel{texts: []*string{text("Sorry, I can't."), text("Still no luck.")}}

	rec, out := post(t, newTestRouter(model), `{"url":"example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Could not generate analysis"}, out)
	assert.Equal(t, 2, model.calls)
}

func TestAnalyzeMissingCredential(t *testing.T) {
	rec, out := post(t, newTestRouter(nil), `{"url":"example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "API key not configured"}, out)
}

func TestAnalyzeSecondAttemptFailurePropagates(t *testing.T) {
	model := &fakeModel{texts: []*string{nil, nil}}

	rec, out := post(t, newTestRouter(model), `{"url":"example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "dial tcp: connection refused", out["error"])
}

func TestAnalyzeMalformedBody(t *testing.T) {
	rec, out := post(t, newTestRouter(&fakeModel{}), `{"url":`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, out["error"])
}

func TestClassifyEmptyMessage(t *testing.T) {
	status, msg := classify(errors.New(""))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)
}

func TestOperationalRoutes(t *testing.T) {
	h := newTestRouter(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	newTestRouter(&fakeModel{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "analyses_total")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/api/analyze")
}

func TestCORSPreflight(t *testing.T) {
	svc := appvoice.NewService(&fakeModel{}, prompt.Strategies(nil))
	h := NewRouter(svc, Options{AllowedOrigins: []string{"https://brand.example"}, Logger: zerolog.Nop()})

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://brand.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://brand.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
