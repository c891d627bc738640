package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) (*Category, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) (*Supplier, error)
	GetByID(ctx context.Context, id int64) (*Supplier, error)
	GetByName(ctx context.Context, name string) (*Supplier, error)
	List(ctx context.Context, halalOnly bool) ([]Supplier, error)
	Update(ctx context.Context, s *Supplier) (*Supplier, error)
	Delete(ctx context.Context, id int64) error
	CountHalalCertified(ctx context.Context) (int, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	ListExpiringSoon(ctx context.Context, now time.Time, window time.Duration) ([]Product, error)
	ListExpired(ctx context.Context, now time.Time) ([]Product, error)
	ListLowStock(ctx context.Context) ([]Product, error)

	// ApplyStock atomically mutates stock and records the audit row.
	ApplyStock(ctx context.Context, productID uuid.UUID, txType TransactionType, quantity int, reason string, accountID uuid.UUID) (*Product, *StockTransaction, error)

	Stats(ctx context.Context, now time.Time, window time.Duration) (*ProductStats, error)
}

type TransactionRepository interface {
	List(ctx context.Context, productID *uuid.UUID, limit int) ([]StockTransaction, error)
}

type AlertRepository interface {
	// Generate inserts missing (product, type) alerts for the given product
	// IDs and returns how many rows were actually created.
	Generate(ctx context.Context, productIDs []uuid.UUID, alertType AlertType) (int, error)
	ListUnread(ctx context.Context, limit int) ([]ExpiryAlert, error)
	ListUnreadByType(ctx context.Context, alertType AlertType, limit int) ([]ExpiryAlert, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) (*ExpiryAlert, error)
	MarkAllRead(ctx context.Context) (int, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *ProductTicket) (*ProductTicket, error)
	GetByID(ctx context.Context, id int64) (*ProductTicket, error)
	List(ctx context.Context, productID *uuid.UUID, limit int) ([]ProductTicket, error)
}

// ProductStats is the aggregate snapshot backing the dashboard.
type ProductStats struct {
	TotalProducts       int   `json:"total_products"`
	LowStockProducts    int   `json:"low_stock_products"`
	ExpiringSoonCount   int   `json:"expiring_soon_products"`
	ExpiredCount        int   `json:"expired_products"`
	TotalStockValue     int64 `json:"total_stock_value_cents"`
	OutOfStockCount     int   `json:"out_of_stock_count"`
	LowStockCount       int   `json:"low_stock_count"`
	NormalStockCount    int   `json:"normal_stock_count"`
	OverstockCount      int   `json:"overstock_count"`
	CategoriesCount     int   `json:"categories_count"`
	HalalSuppliersCount int   `json:"suppliers_count"`
}

// DashboardStats bundles the aggregate snapshot with recent activity.
type DashboardStats struct {
	ProductStats
	RecentTransactions []StockTransaction `json:"recent_stock_transactions"`
	RecentAlerts       []ExpiryAlert      `json:"recent_expiry_alerts"`
	GeneratedAt        time.Time          `json:"generated_at"`
}
