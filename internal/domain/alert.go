package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertType distinguishes products nearing expiry from products already past it.
type AlertType string

const (
	AlertExpiringSoon AlertType = "EXPIRING_SOON"
	AlertExpired      AlertType = "EXPIRED"
)

// ExpiryAlert is unique per (product, type); regenerating alerts never
// duplicates an existing one.
type ExpiryAlert struct {
	ID          int64     `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Type        AlertType `json:"alert_type"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// AlertSummary groups unread alerts for the dashboard.
type AlertSummary struct {
	ExpiringSoon AlertGroup `json:"expiring_soon"`
	Expired      AlertGroup `json:"expired"`
	TotalUnread  int        `json:"total_unread"`
}

type AlertGroup struct {
	Count  int           `json:"count"`
	Alerts []ExpiryAlert `json:"alerts"`
}
