package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
	"github.com/Ayesha-te/ims-backend/internal/app"
	"github.com/Ayesha-te/ims-backend/internal/auth"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	"github.com/Ayesha-te/ims-backend/internal/platform/config"
)

// appService is the slice of the application layer the HTTP handlers use.
type appService interface {
	Register(ctx context.Context, email, password, storeName, address, phone string) (*domain.Account, *auth.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.Account, *auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, halalOnly bool) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Scan(ctx context.Context, code string, scanType app.ScanType) (*domain.Product, error)
	ListExpiringSoon(ctx context.Context) ([]domain.Product, error)
	ListExpired(ctx context.Context) ([]domain.Product, error)
	ListLowStock(ctx context.Context) ([]domain.Product, error)
	UpdateStock(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error)
	ListTransactions(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error)

	GenerateTicket(ctx context.Context, productID, accountID uuid.UUID) (*domain.ProductTicket, error)
	GetTicket(ctx context.Context, id int64) (*domain.ProductTicket, error)
	ListTickets(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error)

	GenerateAlerts(ctx context.Context) (*app.AlertSweepReport, error)
	ListAlerts(ctx context.Context, limit int) ([]domain.ExpiryAlert, error)
	MarkAlertRead(ctx context.Context, id int64) (*domain.ExpiryAlert, error)
	MarkAllAlertsRead(ctx context.Context) (int, error)
	AlertsSummary(ctx context.Context) (*domain.AlertSummary, error)

	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	ImportExcel(ctx context.Context, fileName string, data []byte) (*app.ImportReport, error)
}

const serviceName = "ims-backend"

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app    appService
	issuer *auth.TokenIssuer

	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, service appService, issuer *auth.TokenIssuer, registry *prometheus.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          service,
		issuer:       issuer,
		registry:     registry,
		httpMetrics:  metrics.NewHTTPMetrics(registry),
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
