package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/bankcore/internal/adapter/http"
	"github.com/iho/bankcore/internal/adapter/http/handler"
	"github.com/iho/bankcore/internal/adapter/http/middleware"
	"github.com/iho/bankcore/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/bankcore/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/bankcore/internal/adapter/repository/redis"
	"github.com/iho/bankcore/internal/infrastructure/config"
	"github.com/iho/bankcore/internal/infrastructure/logger"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/infrastructure/postgres"
	"github.com/iho/bankcore/internal/infrastructure/redis"
	"github.com/iho/bankcore/internal/usecase"
)

// rateLimiterIdle is how long a client may stay silent before its limiter
// is dropped.
const rateLimiterIdle = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := buildApp(ctx, cfg, log, registry)
	if err != nil {
		return err
	}
	defer a.close()

	if a.rateLimiter != nil {
		go sweepRateLimiter(ctx, a.rateLimiter, log)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// app is the wired HTTP handler plus the resources it holds.
type app struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	closers     []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type storage struct {
	uowFactory usecase.UnitOfWorkFactory
	accounts   usecase.AccountRepository
	ledger     usecase.LedgerRepository
	retrier    handler.Retrier
	checks     []handler.HealthCheck
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, registry *prometheus.Registry) (*app, error) {
	a := &app{}
	m := metrics.New(registry)

	st, err := openStorage(ctx, cfg, log, m, a)
	if err != nil {
		a.close()
		return nil, err
	}

	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisEnabled {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		st.checks = append(st.checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(st.accounts, idGen, idGen, log).WithMetrics(m)
	fundsUC := usecase.NewFundsUseCase(st.uowFactory, idGen, m, log)
	ledgerUC := usecase.NewLedgerUseCase(st.ledger)

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		FundsHandler:     handler.NewFundsHandler(fundsUC, st.retrier),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(st.checks...),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		Gatherer:         registry,
		RateLimiter:      a.rateLimiter,
		Logger:           log,
	})

	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, a *app) (*storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore(log)
		log.Warn().Msg("using in-memory storage, data is lost on restart")

		return &storage{
			uowFactory: store,
			accounts:   store.Accounts(),
			ledger:     store.Ledger(),
		}, nil
	}

	if cfg.DatabaseAutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	log.Info().Msg("connected to postgres")

	retrier := postgresRepo.NewRetrier().
		WithMaxRetries(cfg.RetryMaxAttempts).
		WithLogger(log).
		WithRetryCounter(m.Retries)

	return &storage{
		uowFactory: postgresRepo.NewUnitOfWorkFactory(pool, log),
		accounts:   postgresRepo.NewAccountRepository(pool),
		ledger:     postgresRepo.NewLedgerRepository(pool),
		retrier:    retrier,
		checks: []handler.HealthCheck{
			{Name: "postgres", Check: pool.Ping},
		},
	}, nil
}

func sweepRateLimiter(ctx context.Context, rl *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(rateLimiterIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := rl.Cleanup(rateLimiterIdle); removed > 0 {
				log.Debug().Int("removed", removed).Msg("dropped idle rate limiters")
			}
		}
	}
}
