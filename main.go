package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vitalstats/natalityd/internal/analyst"
	"github.com/vitalstats/natalityd/internal/api"
	"github.com/vitalstats/natalityd/internal/config"
	"github.com/vitalstats/natalityd/internal/core"
	"github.com/vitalstats/natalityd/internal/core/errx"
	"github.com/vitalstats/natalityd/internal/dataset"
	"github.com/vitalstats/natalityd/internal/session"
	logx "github.com/vitalstats/natalityd/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env, Service: "natalityd"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset problems are fatal: without valid data there is nothing to
	// serve, matching the original dashboard's blocking error states.
	table, err := dataset.NewStore(cfg.Dataset.Path).Get()
	if err != nil {
		var missing *dataset.MissingColumnsError
		switch {
		case errors.Is(err, dataset.ErrNotFound):
			logx.Fatal().Str("path", cfg.Dataset.Path).Msg(errx.DatasetNotFoundMessage)
		case errors.As(err, &missing):
			logx.Fatal().Strs("columns", missing.Columns).Msg(missing.Error())
		default:
			logx.Fatal().Err(err).Msg("failed to load dataset")
		}
	}
	logx.Info().Str("path", cfg.Dataset.Path).Int("rows", table.NumRows()).Msg("dataset loaded")

	sessions, err := buildSessionStore(ctx, cfg.Session)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise session store")
	}

	model, err := buildChatModel(ctx, cfg.Analyst)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise analyst model")
	}

	server := api.NewServer(table, sessions, analyst.New(model))
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(time.Duration(cfg.Server.RequestTimeout) * time.Second),
	}

	go func() {
		logx.Info().Str("addr", cfg.Server.Addr).Str("env", env.String()).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildSessionStore selects the conversation store backend. Memory is the
// default; redis is opt-in via SESSION_BACKEND=redis.
func buildSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		ttl, err := cfg.ParseTTL()
		if err != nil {
			return nil, errors.New("invalid SESSION_TTL: " + cfg.TTL)
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		opts.ReadTimeout = time.Duration(cfg.RedisReadTimeout) * time.Second
		opts.WriteTimeout = time.Duration(cfg.RedisWriteTimeout) * time.Second
		opts.DialTimeout = time.Duration(cfg.RedisDialTimeout) * time.Second

		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		logx.Info().Msg("connected to redis session store")
		return session.NewRedisStore(client, ttl), nil
	default:
		return nil, errors.New("unknown session backend: " + cfg.Backend)
	}
}

// buildChatModel selects the analyst provider. The OpenAI-compatible
// client (Groq by default) is the default; gemini is opt-in.
func buildChatModel(ctx context.Context, cfg config.AnalystConfig) (analyst.ChatModel, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "openai":
		return analyst.NewOpenAIClient(analyst.OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     time.Duration(cfg.Timeout) * time.Second,
		}), nil
	case "gemini":
		return analyst.NewGeminiModel(ctx, analyst.GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
	default:
		return nil, errors.New("unknown analyst backend: " + cfg.Backend)
	}
}
