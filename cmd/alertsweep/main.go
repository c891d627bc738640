package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Ayesha-te/ims-backend/internal/adapter/postgres"
	"github.com/Ayesha-te/ims-backend/internal/app"
	"github.com/Ayesha-te/ims-backend/internal/auth"
)

// alertsweep runs a single expiry alert sweep and exits. It is meant for cron
// jobs and one-off operational runs next to the long-running server.
func main() {
	var (
		databaseURL = flag.String("database", os.Getenv("DATABASE_URL"), "PostgreSQL URL (or set DATABASE_URL env)")
		days        = flag.Int("days", 30, "Expiring-soon window in days")
		cleanup     = flag.Bool("cleanup", false, "Also delete read alerts older than the retention window")
		retention   = flag.Int("retention", 30, "Retention window in days for -cleanup")
		force       = flag.Bool("force", false, "Delete all read alerts before sweeping, regardless of age")
		verbose     = flag.Bool("verbose", false, "Verbose logging")
	)
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("PostgreSQL URL required (--database or DATABASE_URL env)")
	}
	if *days < 1 {
		log.Fatal("-days must be positive")
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	clock := clockwork.NewRealClock()
	window := time.Duration(*days) * 24 * time.Hour

	// Token issuance is never exercised here; the service only needs the
	// repositories for a sweep.
	service := app.NewService(
		postgres.NewAccountRepo(pool),
		postgres.NewCategoryRepo(pool),
		postgres.NewSupplierRepo(pool),
		postgres.NewProductRepo(pool),
		postgres.NewTransactionRepo(pool),
		postgres.NewAlertRepo(pool),
		postgres.NewTicketRepo(pool),
		nil,
		auth.NewTokenIssuer("alertsweep-unused-secret-0000000000000000", time.Hour, time.Hour, clock),
		clock,
		window,
	)

	if *force {
		removed, err := service.CleanupAlerts(ctx, 0)
		if err != nil {
			log.Fatalf("Forced alert cleanup failed: %v", err)
		}
		slog.Info("Removed read alerts before sweep", "removed", removed)
	}

	start := time.Now()
	report, err := service.GenerateAlertsWithWindow(ctx, window)
	if err != nil {
		log.Fatalf("Alert sweep failed: %v", err)
	}
	slog.Info("Alert sweep complete",
		"expiring_soon_created", report.ExpiringSoonCreated,
		"expired_created", report.ExpiredCreated,
		"window_days", *days,
		"duration_ms", time.Since(start).Milliseconds())

	if *cleanup {
		pruned, err := service.CleanupAlerts(ctx, time.Duration(*retention)*24*time.Hour)
		if err != nil {
			log.Fatalf("Alert cleanup failed: %v", err)
		}
		slog.Info("Alert cleanup complete", "pruned", pruned, "retention_days", *retention)
	}
}
