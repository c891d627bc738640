package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

// AlertRepo implements domain.AlertRepository backed by PostgreSQL.
type AlertRepo struct {
	pool *pgxpool.Pool
}

func NewAlertRepo(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Generate inserts alerts for the given products, skipping (product, type)
// pairs that already exist. The unique constraint makes repeated sweeps
// idempotent.
func (r *AlertRepo) Generate(ctx context.Context, productIDs []uuid.UUID, alertType domain.AlertType) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO expiry_alerts (product_id, alert_type)
		SELECT unnest($1::UUID[]), $2
		ON CONFLICT (product_id, alert_type) DO NOTHING`,
		productIDs, string(alertType))
	if err != nil {
		return 0, fmt.Errorf("failed to generate expiry alerts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *AlertRepo) ListUnread(ctx context.Context, limit int) ([]domain.ExpiryAlert, error) {
	return r.queryAlerts(ctx, `
		SELECT a.id, a.product_id, p.name, a.alert_type, a.is_read, a.created_at
		FROM expiry_alerts a
		JOIN products p ON p.id = a.product_id
		WHERE NOT a.is_read
		ORDER BY a.created_at DESC
		LIMIT $1`, limit)
}

func (r *AlertRepo) ListUnreadByType(ctx context.Context, alertType domain.AlertType, limit int) ([]domain.ExpiryAlert, error) {
	return r.queryAlerts(ctx, `
		SELECT a.id, a.product_id, p.name, a.alert_type, a.is_read, a.created_at
		FROM expiry_alerts a
		JOIN products p ON p.id = a.product_id
		WHERE NOT a.is_read AND a.alert_type = $1
		ORDER BY a.created_at DESC
		LIMIT $2`, string(alertType), limit)
}

func (r *AlertRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expiry_alerts WHERE NOT is_read`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

func (r *AlertRepo) MarkRead(ctx context.Context, id int64) (*domain.ExpiryAlert, error) {
	var a domain.ExpiryAlert
	err := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE expiry_alerts SET is_read = TRUE WHERE id = $1
			RETURNING id, product_id, alert_type, is_read, created_at
		)
		SELECT u.id, u.product_id, p.name, u.alert_type, u.is_read, u.created_at
		FROM updated u
		JOIN products p ON p.id = u.product_id`, id,
	).Scan(&a.ID, &a.ProductID, &a.ProductName, &a.Type, &a.IsRead, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark alert read: %w", err)
	}
	return &a, nil
}

func (r *AlertRepo) MarkAllRead(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE expiry_alerts SET is_read = TRUE WHERE NOT is_read`)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all alerts read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteReadOlderThan prunes read alerts created before the cutoff. Unread
// alerts are never pruned.
func (r *AlertRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM expiry_alerts WHERE is_read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read alerts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *AlertRepo) queryAlerts(ctx context.Context, query string, args ...any) ([]domain.ExpiryAlert, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiry alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]domain.ExpiryAlert, 0)
	for rows.Next() {
		var a domain.ExpiryAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.Type, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expiry alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expiry alerts: %w", err)
	}
	return alerts, nil
}
