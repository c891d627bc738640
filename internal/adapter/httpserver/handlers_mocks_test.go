package httpserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
	"github.com/Ayesha-te/ims-backend/internal/app"
	"github.com/Ayesha-te/ims-backend/internal/auth"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	"github.com/Ayesha-te/ims-backend/internal/platform/config"
)

var errNotImplemented = errors.New("not implemented")

// --- Mock implementation ---

type mockAppService struct {
	registerFn   func(ctx context.Context, email, password, storeName, address, phone string) (*domain.Account, *auth.TokenPair, error)
	loginFn      func(ctx context.Context, email, password string) (*domain.Account, *auth.TokenPair, error)
	refreshFn    func(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	getAccountFn func(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	createCategoryFn func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	getCategoryFn    func(ctx context.Context, id int64) (*domain.Category, error)
	listCategoriesFn func(ctx context.Context) ([]domain.Category, error)
	updateCategoryFn func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	deleteCategoryFn func(ctx context.Context, id int64) error

	createSupplierFn func(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	getSupplierFn    func(ctx context.Context, id int64) (*domain.Supplier, error)
	listSuppliersFn  func(ctx context.Context, halalOnly bool) ([]domain.Supplier, error)
	updateSupplierFn func(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	deleteSupplierFn func(ctx context.Context, id int64) error

	createProductFn    func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	getProductFn       func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	listProductsFn     func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	updateProductFn    func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	deleteProductFn    func(ctx context.Context, id uuid.UUID) error
	scanFn             func(ctx context.Context, code string, scanType app.ScanType) (*domain.Product, error)
	listExpiringSoonFn func(ctx context.Context) ([]domain.Product, error)
	listExpiredFn      func(ctx context.Context) ([]domain.Product, error)
	listLowStockFn     func(ctx context.Context) ([]domain.Product, error)
	updateStockFn      func(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error)
	listTransactionsFn func(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error)

	generateTicketFn func(ctx context.Context, productID, accountID uuid.UUID) (*domain.ProductTicket, error)
	getTicketFn      func(ctx context.Context, id int64) (*domain.ProductTicket, error)
	listTicketsFn    func(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error)

	generateAlertsFn    func(ctx context.Context) (*app.AlertSweepReport, error)
	listAlertsFn        func(ctx context.Context, limit int) ([]domain.ExpiryAlert, error)
	markAlertReadFn     func(ctx context.Context, id int64) (*domain.ExpiryAlert, error)
	markAllAlertsReadFn func(ctx context.Context) (int, error)
	alertsSummaryFn     func(ctx context.Context) (*domain.AlertSummary, error)

	dashboardStatsFn func(ctx context.Context) (*domain.DashboardStats, error)
	importExcelFn    func(ctx context.Context, fileName string, data []byte) (*app.ImportReport, error)
}

func (m *mockAppService) Register(ctx context.Context, email, password, storeName, address, phone string) (*domain.Account, *auth.TokenPair, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, password, storeName, address, phone)
	}
	return nil, nil, errNotImplemented
}

func (m *mockAppService) Login(ctx context.Context, email, password string) (*domain.Account, *auth.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, nil, errNotImplemented
}

func (m *mockAppService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.getAccountFn != nil {
		return m.getAccountFn(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAppService) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, c)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockAppService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, c)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteCategory(ctx context.Context, id int64) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	if m.createSupplierFn != nil {
		return m.createSupplierFn(ctx, s)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	if m.getSupplierFn != nil {
		return m.getSupplierFn(ctx, id)
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *mockAppService) ListSuppliers(ctx context.Context, halalOnly bool) ([]domain.Supplier, error) {
	if m.listSuppliersFn != nil {
		return m.listSuppliersFn(ctx, halalOnly)
	}
	return nil, nil
}

func (m *mockAppService) UpdateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	if m.updateSupplierFn != nil {
		return m.updateSupplierFn(ctx, s)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteSupplier(ctx context.Context, id int64) error {
	if m.deleteSupplierFn != nil {
		return m.deleteSupplierFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.createProductFn != nil {
		return m.createProductFn(ctx, p)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.getProductFn != nil {
		return m.getProductFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockAppService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.updateProductFn != nil {
		return m.updateProductFn(ctx, p)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if m.deleteProductFn != nil {
		return m.deleteProductFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) Scan(ctx context.Context, code string, scanType app.ScanType) (*domain.Product, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, code, scanType)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockAppService) ListExpiringSoon(ctx context.Context) ([]domain.Product, error) {
	if m.listExpiringSoonFn != nil {
		return m.listExpiringSoonFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) ListExpired(ctx context.Context) ([]domain.Product, error) {
	if m.listExpiredFn != nil {
		return m.listExpiredFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	if m.listLowStockFn != nil {
		return m.listLowStockFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) UpdateStock(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error) {
	if m.updateStockFn != nil {
		return m.updateStockFn(ctx, productID, txType, quantity, reason, accountID)
	}
	return nil, nil, errNotImplemented
}

func (m *mockAppService) ListTransactions(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(ctx, productID, limit)
	}
	return nil, nil
}

func (m *mockAppService) GenerateTicket(ctx context.Context, productID, accountID uuid.UUID) (*domain.ProductTicket, error) {
	if m.generateTicketFn != nil {
		return m.generateTicketFn(ctx, productID, accountID)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) GetTicket(ctx context.Context, id int64) (*domain.ProductTicket, error) {
	if m.getTicketFn != nil {
		return m.getTicketFn(ctx, id)
	}
	return nil, domain.ErrTicketNotFound
}

func (m *mockAppService) ListTickets(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error) {
	if m.listTicketsFn != nil {
		return m.listTicketsFn(ctx, productID, limit)
	}
	return nil, nil
}

func (m *mockAppService) GenerateAlerts(ctx context.Context) (*app.AlertSweepReport, error) {
	if m.generateAlertsFn != nil {
		return m.generateAlertsFn(ctx)
	}
	return &app.AlertSweepReport{}, nil
}

func (m *mockAppService) ListAlerts(ctx context.Context, limit int) ([]domain.ExpiryAlert, error) {
	if m.listAlertsFn != nil {
		return m.listAlertsFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockAppService) MarkAlertRead(ctx context.Context, id int64) (*domain.ExpiryAlert, error) {
	if m.markAlertReadFn != nil {
		return m.markAlertReadFn(ctx, id)
	}
	return nil, domain.ErrAlertNotFound
}

func (m *mockAppService) MarkAllAlertsRead(ctx context.Context) (int, error) {
	if m.markAllAlertsReadFn != nil {
		return m.markAllAlertsReadFn(ctx)
	}
	return 0, nil
}

func (m *mockAppService) AlertsSummary(ctx context.Context) (*domain.AlertSummary, error) {
	if m.alertsSummaryFn != nil {
		return m.alertsSummaryFn(ctx)
	}
	return &domain.AlertSummary{}, nil
}

func (m *mockAppService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if m.dashboardStatsFn != nil {
		return m.dashboardStatsFn(ctx)
	}
	return &domain.DashboardStats{}, nil
}

func (m *mockAppService) ImportExcel(ctx context.Context, fileName string, data []byte) (*app.ImportReport, error) {
	if m.importExcelFn != nil {
		return m.importExcelFn(ctx, fileName, data)
	}
	return nil, errNotImplemented
}

// --- Test helpers ---

const testSecret = "handler-test-secret-key-32-chars!"

func newTestServer(t *testing.T, service appService) *Server {
	t.Helper()

	cfg := &config.Config{
		AppEnv:    "test",
		Port:      "8080",
		SecretKey: testSecret,
	}
	issuer := auth.NewTokenIssuer(testSecret, time.Hour, 24*time.Hour, clockwork.NewRealClock())

	return NewServer(cfg, service, issuer, metrics.NewRegistry(), nil)
}

// bearerToken issues a valid access token for an arbitrary account.
func bearerToken(t *testing.T, srv *Server) (uuid.UUID, string) {
	t.Helper()

	accountID := uuid.New()
	pair, err := srv.issuer.IssuePair(accountID)
	if err != nil {
		t.Fatalf("failed to issue token pair: %v", err)
	}
	return accountID, "Bearer " + pair.Access
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware(nil)(handler)(c)
}
