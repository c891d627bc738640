package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	"github.com/Ayesha-te/ims-backend/internal/platform/correlation"
)

// AlertSweeper periodically generates expiry alerts and prunes read alerts
// past the retention window. One sweep runs immediately at startup so a
// restarted instance never waits a full interval for fresh alerts.
type AlertSweeper struct {
	service   *Service
	clock     clockwork.Clock
	interval  time.Duration
	retention time.Duration
	metrics   *metrics.SweepMetrics
}

// NewAlertSweeper creates the background sweeper. sweepMetrics may be nil.
func NewAlertSweeper(service *Service, clock clockwork.Clock, interval, retention time.Duration, sweepMetrics *metrics.SweepMetrics) *AlertSweeper {
	return &AlertSweeper{
		service:   service,
		clock:     clock,
		interval:  interval,
		retention: retention,
		metrics:   sweepMetrics,
	}
}

// Run starts the sweep loop. It blocks until ctx is cancelled.
func (w *AlertSweeper) Run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			w.sweep(ctx)
		}
	}
}

func (w *AlertSweeper) sweep(ctx context.Context) {
	sweepCtx := correlation.WithID(ctx, correlation.NewID())
	start := time.Now()

	report, err := w.service.GenerateAlerts(sweepCtx)
	if err != nil {
		slog.ErrorContext(sweepCtx, "Alert sweep failed", "error", err)
		if w.metrics != nil {
			w.metrics.SweepErrors.Inc()
		}
		return
	}

	pruned, err := w.service.CleanupAlerts(sweepCtx, w.retention)
	if err != nil {
		slog.ErrorContext(sweepCtx, "Alert cleanup failed", "error", err)
		if w.metrics != nil {
			w.metrics.SweepErrors.Inc()
		}
		return
	}

	if w.metrics != nil {
		w.metrics.AlertsGenerated.WithLabelValues(string(domain.AlertExpiringSoon)).Add(float64(report.ExpiringSoonCreated))
		w.metrics.AlertsGenerated.WithLabelValues(string(domain.AlertExpired)).Add(float64(report.ExpiredCreated))
		w.metrics.AlertsPruned.Add(float64(pruned))
		w.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}

	slog.InfoContext(sweepCtx, "Alert sweep completed",
		"expiring_soon_created", report.ExpiringSoonCreated,
		"expired_created", report.ExpiredCreated,
		"pruned", pruned,
		"duration", time.Since(start),
	)
}
