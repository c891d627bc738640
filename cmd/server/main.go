package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ayesha-te/ims-backend/internal/adapter/httpserver"
	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
	"github.com/Ayesha-te/ims-backend/internal/adapter/postgres"
	"github.com/Ayesha-te/ims-backend/internal/adapter/redis"
	"github.com/Ayesha-te/ims-backend/internal/app"
	"github.com/Ayesha-te/ims-backend/internal/auth"
	"github.com/Ayesha-te/ims-backend/internal/platform/config"
	"github.com/Ayesha-te/ims-backend/internal/platform/logging"
	"github.com/Ayesha-te/ims-backend/internal/platform/retry"
)

const dashboardEvictionInterval = time.Minute

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The database may still be coming up when the platform starts us
	policy := retry.Policy{
		MaxAttempts:    5,
		InitialBackoff: time.Second,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Database not reachable yet, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	pool, err := retry.Do(ctx, policy, func(error) retry.Action { return retry.Retry }, func() (*pgxpool.Pool, error) {
		return postgres.Connect(ctx, cfg.DatabaseURL)
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config, registry *prometheus.Registry) *redis.Client {
	client, err := redis.NewClient(cfg.RedisURL, metrics.NewRedisMetrics(registry))
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		slog.Error("Failed to ping Redis", "error", err)
		os.Exit(1)
	}

	return client
}

func runGracefulShutdown(srv *httpserver.Server, cancelSweeper context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		cancelSweeper()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	registry := metrics.NewRegistry()

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(cfg, registry)
	defer func() { _ = redisClient.Close() }()

	cache := redis.NewDashboardCache(redisClient.Underlying(), clock, cfg.DashboardCacheTTL, metrics.NewCacheMetrics(registry))
	stopEviction := cache.StartEvictionTimer(dashboardEvictionInterval)
	defer stopEviction()

	issuer := auth.NewTokenIssuer(cfg.SecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, clock)

	service := app.NewService(
		postgres.NewAccountRepo(pool),
		postgres.NewCategoryRepo(pool),
		postgres.NewSupplierRepo(pool),
		postgres.NewProductRepo(pool),
		postgres.NewTransactionRepo(pool),
		postgres.NewAlertRepo(pool),
		postgres.NewTicketRepo(pool),
		cache,
		issuer,
		clock,
		time.Duration(cfg.ExpiryAlertDays)*24*time.Hour,
	)

	sweeper := app.NewAlertSweeper(
		service,
		clock,
		cfg.AlertSweepInterval,
		time.Duration(cfg.AlertRetentionDays)*24*time.Hour,
		metrics.NewSweepMetrics(registry),
	)
	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	go sweeper.Run(sweeperCtx)

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: redisClient.Ping},
	}

	srv := httpserver.NewServer(cfg, service, issuer, registry, healthChecks)

	done := runGracefulShutdown(srv, cancelSweeper)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
