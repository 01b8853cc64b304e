package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/events"
	"github.com/gokatarajesh/trivia-api/internal/export"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	core *core
	http *http.Server

	bgCancels []context.CancelFunc
}

// core is the storage and service graph shared by the API and the importer.
type core struct {
	pool       *pgxpool.Pool
	redis      *redis.Client
	service    *trivia.Service
	subscriber *events.Subscriber
	deps       map[string]server.Pinger
}

func newCore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*core, error) {
	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	queries := sqlcgen.New(pool)
	categoryRepo := repository.NewCategoryRepository(queries)
	questionRepo := repository.NewQuestionRepository(queries, repository.NewPoolTx(pool))

	c := &core{
		pool: pool,
		deps: map[string]server.Pinger{"postgres": pool},
	}

	var notifier trivia.ChangeNotifier
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		c.redis = redisClient
		notifier = events.NewPublisher(redisClient, cfg.Trivia.EventsChannel, logger)
		c.subscriber = events.NewSubscriber(redisClient, cfg.Trivia.EventsChannel, logger)
		c.deps["redis"] = server.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		logger.Warn().Msg("REDIS_ADDR not configured; question change events disabled")
	}

	c.service = trivia.NewService(categoryRepo, questionRepo, trivia.ServiceOptions{
		PageSize: cfg.Trivia.PageSize,
		Notifier: notifier,
	}, logger)
	return c, nil
}

func (c *core) close(logger zerolog.Logger) {
	c.pool.Close()
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

// New bootstraps logger, Postgres, the optional Redis client and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	c, err := newCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	apiServer := server.NewHTTPServer(cfg, logger, c.deps,
		trivia.NewHTTPHandler(c.service, logger),
		export.NewHTTPHandler(c.service, logger),
	)

	return &Application{
		cfg:       cfg,
		logger:    logger,
		core:      c,
		http:      apiServer,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.core.close(a.logger)

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.core.subscriber == nil {
		return
	}
	bgCtx, cancel := context.WithCancel(ctx)
	a.bgCancels = append(a.bgCancels, cancel)
	go func() {
		if err := a.core.subscriber.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn().Err(err).Msg("question event subscriber stopped")
		}
	}()
}
