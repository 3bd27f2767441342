package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	appvoice "github.com/bryanwahyu/brand-voice/internal/application/voice"
	"github.com/bryanwahyu/brand-voice/internal/config"
	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
	"github.com/bryanwahyu/brand-voice/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/brand-voice/internal/infra/ai/openai"
	"github.com/bryanwahyu/brand-voice/internal/infra/ai/prompt"
	"github.com/bryanwahyu/brand-voice/internal/infra/httpserver"
	"github.com/bryanwahyu/brand-voice/internal/infra/web"
	"github.com/bryanwahyu/brand-voice/internal/logger"
	"github.com/bryanwahyu/brand-voice/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	client := newModelClient(cfg, log)

	var pages prompt.Snapshotter
	if cfg.Strategies.PageSnapshot {
		pages = web.NewFetcher(cfg.Strategies.SnapshotTimeout, cfg.Strategies.SnapshotMaxBytes)
	}

	svc := appvoice.NewService(client, prompt.Strategies(pages),
		appvoice.WithRecorder(middleware.AnalysisRecorder{}),
		appvoice.WithLogger(log),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: httpserver.NewRouter(svc, httpserver.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         log,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Str("provider", cfg.Model.Provider).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// newModelClient returns nil when no credential is configured so that every
// analyze request reports the missing key instead of failing at startup.
func newModelClient(cfg *config.Config, log zerolog.Logger) ai.Client {
	if !cfg.HasCredential() {
		log.Warn().Str("provider", cfg.Model.Provider).Msg("model api key not configured")
		return nil
	}
	switch cfg.Model.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Options{
			APIKey:      cfg.Model.APIKey,
			BaseURL:     cfg.Model.BaseURL,
			Model:       cfg.Model.Name,
			SearchModel: cfg.Model.SearchName,
			MaxTokens:   cfg.Model.MaxTokens,
		})
	default:
		return anthropic.NewClient(anthropic.Options{
			APIKey:           cfg.Model.APIKey,
			BaseURL:          cfg.Model.BaseURL,
			Model:            cfg.Model.Name,
			MaxTokens:        int64(cfg.Model.MaxTokens),
			WebSearchMaxUses: int64(cfg.Model.WebSearchMaxUses),
		})
	}
}
