package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
	domain "github.com/bryanwahyu/brand-voice/internal/domain/voice"
	"github.com/bryanwahyu/brand-voice/internal/infra/ai/prompt"
)

type reply struct {
	text string
	err  error
}

// scriptedClient answers calls in order and records the requests it saw.
type scriptedClient struct {
	mu      sync.Mutex
	replies []reply
	calls   []ai.Request
}

func (c *scriptedClient) Complete(_ context.Context, req ai.Request) (*ai.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if len(c.calls) > len(c.replies) {
		return nil, errors.New("unexpected call")
	}
	r := c.replies[len(c.calls)-1]
	if r.err != nil {
		return nil, r.err
	}
	return &ai.Response{Segments: []string{r.text}}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type countingRecorder struct {
	mu        sync.Mutex
	failed    []string
	completed []string
	giveUps   int
}

func (r *countingRecorder) AttemptFailed(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, s)
}

func (r *countingRecorder) AnalysisCompleted(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, s)
}

func (r *countingRecorder) AnalysisFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.giveUps++
}

func newTestService(client ai.Client, rec Recorder) *Service {
	opts := []Option{WithClock(fixedClock{t: time.Unix(0, 0)})}
	if rec != nil {
		opts = append(opts, WithRecorder(rec))
	}
	return NewService(client, prompt.Strategies(nil), opts...)
}

func TestAnalyzeFirstAttemptSucceeds(t *testing.T) {
	client := &scriptedClient{replies: []reply{{text: `{"brand_name":"Acme","voice_score":88}`}}}
	rec := &countingRecorder{}

	res, err := newTestService(client, rec).Analyze(context.Background(), "  acme.test  ")
	require.NoError(t, err)

	assert.Equal(t, "Acme", res.BrandName)
	assert.Equal(t, 88, res.VoiceScore)
	require.Len(t, client.calls, 1)
	assert.True(t, client.calls[0].WebSearch)
	assert.Contains(t, client.calls[0].Prompt, "URL: acme.test\n")
	assert.Equal(t, []string{"web_search"}, rec.completed)
}

func TestAnalyzeFallsBackAfterNetworkError(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{err: errors.New("connection reset")},
		{text: `{"brand_name":"Example","scores":{"consistency":{"score":80,"reasoning":"ok"}}}`},
	}}
	rec := &countingRecorder{}

	res, err := newTestService(client, rec).Analyze(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, "Example", res.BrandName)
	assert.Equal(t, 80, res.VoiceScore)
	assert.Equal(t, []string{}, res.Strengths)
	require.Len(t, client.calls, 2)
	assert.True(t, client.calls[0].WebSearch)
	assert.False(t, client.calls[1].WebSearch)
	assert.Equal(t, []string{"web_search"}, rec.failed)
	assert.Equal(t, []string{"background_knowledge"}, rec.completed)
}

func TestAnalyzeFallsBackWhenNoJSON(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{text: "I could not find that site."},
		{text: "```json\n{\"brand_name\":\"Late\"}\n```"},
	}}

	res, err := newTestService(client, nil).Analyze(context.Background(), "late.test")
	require.NoError(t, err)
	assert.Equal(t, "Late", res.BrandName)
	assert.Len(t, client.calls, 2)
}

func TestAnalyzeUnavailableWhenNoAttemptYieldsJSON(t *testing.T) {
	client := &scriptedClient{replies: []reply{{text: "nothing"}, {text: "still nothing"}}}
	rec := &countingRecorder{}

	_, err := newTestService(client, rec).Analyze(context.Background(), "example.com")
	assert.ErrorIs(t, err, domain.ErrAnalysisUnavailable)
	assert.Len(t, client.calls, 2)
	assert.Equal(t, 1, rec.giveUps)
}

func TestAnalyzeLastAttemptErrorPropagates(t *testing.T) {
	boom := errors.New("upstream 529 overloaded")
	client := &scriptedClient{replies: []reply{{err: errors.New("timeout")}, {err: boom}}}

	_, err := newTestService(client, nil).Analyze(context.Background(), "example.com")
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeRejectsBlankURL(t *testing.T) {
	client := &scriptedClient{}
	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := newTestService(client, nil).Analyze(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, client.calls)
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	svc := NewService(nil, prompt.Strategies(nil))
	assert.False(t, svc.Configured())

	_, err := svc.Analyze(context.Background(), "example.com")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestAnalyzeBlankURLCheckedBeforeCredential(t *testing.T) {
	_, err := NewService(nil, prompt.Strategies(nil)).Analyze(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type failingStrategy struct{}

func (failingStrategy) Name() string { return "broken" }

func (failingStrategy) Build(context.Context, string) (ai.Request, error) {
	return ai.Request{}, errors.New("cannot build")
}

func TestAnalyzeStrategyBuildErrorFallsThrough(t *testing.T) {
	client := &scriptedClient{replies: []reply{{text: `{"brand_name":"B"}`}}}
	svc := NewService(client, []domain.Strategy{failingStrategy{}, prompt.BackgroundKnowledgeStrategy{}})

	res, err := svc.Analyze(context.Background(), "b.test")
	require.NoError(t, err)
	assert.Equal(t, "B", res.BrandName)
	assert.Len(t, client.calls, 1)
}

func TestAnalyzeNoStrategies(t *testing.T) {
	_, err := NewService(&scriptedClient{}, nil).Analyze(context.Background(), "x.test")
	assert.ErrorIs(t, err, domain.ErrAnalysisUnavailable)
}
