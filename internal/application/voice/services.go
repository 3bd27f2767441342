package voice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/brand-voice/internal/application"
	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
	domain "github.com/bryanwahyu/brand-voice/internal/domain/voice"
)

// Recorder observes attempt outcomes. Implementations must be safe for concurrent use.
type Recorder interface {
	AttemptFailed(strategy string)
	AnalysisCompleted(strategy string)
	AnalysisFailed()
}

// Service runs the brand-voice audit for a URL.
// Service holds no per-request state and is safe for concurrent use.
type Service struct {
	client     ai.Client
	strategies []domain.Strategy
	clock      application.Clock
	recorder   Recorder
	log        zerolog.Logger
}

type Option func(*Service)

func WithClock(c application.Clock) Option { return func(s *Service) { s.clock = c } }

func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// NewService wires the model client and attempt order. A nil client means no
// credential was configured; Analyze then fails with ErrNotConfigured.
func NewService(client ai.Client, strategies []domain.Strategy, opts ...Option) *Service {
	s := &Service{
		client:     client,
		strategies: strategies,
		clock:      application.SystemClock{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a model client was injected.
func (s *Service) Configured() bool {
	return s.client != nil
}

// Analyze tries each strategy in order and normalizes the first response that
// carries a JSON object. Failures of every attempt but the last are logged and
// skipped; a failure of the last attempt is returned as is.
func (s *Service) Analyze(ctx context.Context, url string) (*domain.AnalysisResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.client == nil {
		return nil, domain.ErrNotConfigured
	}

	log := s.logger(ctx)
	for i, strategy := range s.strategies {
		last := i == len(s.strategies)-1

		parsed, err := s.attempt(ctx, strategy, url)
		if err != nil {
			if last {
				s.failed()
				return nil, err
			}
			log.Warn().Err(err).Str("strategy", strategy.Name()).Msg("analysis attempt failed, falling back")
			s.attemptFailed(strategy.Name())
			continue
		}
		if parsed == nil {
			log.Warn().Str("strategy", strategy.Name()).Msg("model response held no JSON object")
			s.attemptFailed(strategy.Name())
			continue
		}

		if s.recorder != nil {
			s.recorder.AnalysisCompleted(strategy.Name())
		}
		return domain.Normalize(parsed, url), nil
	}

	s.failed()
	return nil, domain.ErrAnalysisUnavailable
}

func (s *Service) attempt(ctx context.Context, strategy domain.Strategy, url string) (map[string]any, error) {
	req, err := strategy.Build(ctx, url)
	if err != nil {
		return nil, err
	}

	start := s.clock.Now()
	resp, err := s.client.Complete(ctx, req)
	s.logger(ctx).Debug().
		Str("strategy", strategy.Name()).
		Bool("web_search", req.WebSearch).
		Dur("duration", s.clock.Now().Sub(start)).
		Msg("model call finished")
	if err != nil {
		return nil, err
	}
	return domain.ExtractJSON(resp.Text()), nil
}

func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

func (s *Service) attemptFailed(name string) {
	if s.recorder != nil {
		s.recorder.AttemptFailed(name)
	}
}

func (s *Service) failed() {
	if s.recorder != nil {
		s.recorder.AnalysisFailed()
	}
}
