package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-rooms/internal/config"
	"github.com/gokatarajesh/trivia-rooms/internal/db/repository"
	"github.com/gokatarajesh/trivia-rooms/internal/logging"
	"github.com/gokatarajesh/trivia-rooms/internal/metrics"
	"github.com/gokatarajesh/trivia-rooms/internal/question"
	"github.com/gokatarajesh/trivia-rooms/internal/question/ai"
	"github.com/gokatarajesh/trivia-rooms/internal/room"
	"github.com/gokatarajesh/trivia-rooms/internal/server"
	"github.com/gokatarajesh/trivia-rooms/internal/session"
	"github.com/gokatarajesh/trivia-rooms/internal/tracing"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool          *pgxpool.Pool
	redis         *redis.Client
	http          *http.Server
	traceShutdown tracing.Shutdown
}

var (
	initTracing    = tracing.Init
	newRedisClient = func(cfg config.Redis) *redis.Client {
		return redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		})
	}
)

// New bootstraps configs, logger, Postgres, Redis and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	traceShutdown, err := initTracing(ctx, cfg, logging.Component(logger, "tracing"))
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	redisClient := newRedisClient(cfg.Redis)
	pingers := []server.Pinger{
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}

	var (
		pool  *pgxpool.Pool
		store room.Store
	)
	switch cfg.Rooms.Store {
	case config.RoomStoreMemory:
		store = room.NewMemoryStore()
		logger.Warn().Msg("rooms are kept in memory and will not survive a restart")
	default:
		pool, err = pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			_ = redisClient.Close()
			_ = traceShutdown(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store = repository.NewRoomRepository(pool)
		pingers = append(pingers, pool.Ping)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	model := ai.NewClient(ai.Config{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.HTTPTimeout,
	}, logger)
	if !model.Configured() {
		logger.Warn().Msg("AI_BASE_URL or AI_API_KEY not set; questions will come from the sample bank")
	}
	questionSvc := question.NewService(model, logger, question.ServiceOptions{Metrics: m})

	remote := room.NewRemoteClient(cfg.Remote.BaseURL, cfg.Remote.HTTPTimeout, logger)
	sessions := session.NewStore(redisClient, cfg.Session.TTL)
	creator := room.NewCreator(room.EnvFlagSource{}, remote, questionSvc, store, logger, room.CreatorOptions{
		Sessions: sessions,
		Metrics:  m,
	})
	tokens := session.NewTokenManager(session.TokenConfig{
		Secret: []byte(cfg.Session.Secret),
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Name,
	})

	apiServer := server.NewHTTPServer(cfg, logger, server.Routes{
		Questions: question.NewHTTPHandlers(questionSvc, logger),
		Rooms:     room.NewHTTPHandlers(creator, tokens, logger),
		Sessions:  session.NewHTTPHandlers(sessions, tokens, logger),
		Gatherer:  registry,
		Pingers:   pingers,
	})

	return &Application{
		cfg:           cfg,
		logger:        logger,
		pool:          pool,
		redis:         redisClient,
		http:          apiServer,
		traceShutdown: traceShutdown,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if err := a.traceShutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("tracer shutdown error")
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
