package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

// --- Mock implementations ---

type mockAccountRepo struct {
	createFn     func(ctx context.Context, account *domain.Account) (*domain.Account, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Account, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockCategoryRepo struct {
	createFn    func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	getByIDFn   func(ctx context.Context, id int64) (*domain.Category, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Category, error)
	listFn      func(ctx context.Context) ([]domain.Category, error)
	countFn     func(ctx context.Context) (int, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryRepo) Update(_ context.Context, c *domain.Category) (*domain.Category, error) {
	return c, nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockCategoryRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSupplierRepo struct {
	createFn    func(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	getByIDFn   func(ctx context.Context, id int64) (*domain.Supplier, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Supplier, error)
	countFn     func(ctx context.Context) (int, error)
}

func (m *mockSupplierRepo) Create(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSupplierRepo) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSupplierRepo) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *mockSupplierRepo) List(_ context.Context, _ bool) ([]domain.Supplier, error) {
	return nil, nil
}

func (m *mockSupplierRepo) Update(_ context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	return s, nil
}

func (m *mockSupplierRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockSupplierRepo) CountHalalCertified(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockProductRepo struct {
	createFn           func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	getByBarcodeFn     func(ctx context.Context, barcode string) (*domain.Product, error)
	listFn             func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	updateFn           func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	deactivateFn       func(ctx context.Context, id uuid.UUID) error
	listExpiringSoonFn func(ctx context.Context, now time.Time, window time.Duration) ([]domain.Product, error)
	listExpiredFn      func(ctx context.Context, now time.Time) ([]domain.Product, error)
	listLowStockFn     func(ctx context.Context) ([]domain.Product, error)
	applyStockFn       func(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error)
	statsFn            func(ctx context.Context, now time.Time, window time.Duration) (*domain.ProductStats, error)
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	if m.getByBarcodeFn != nil {
		return m.getByBarcodeFn(ctx, barcode)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

func (m *mockProductRepo) ListExpiringSoon(ctx context.Context, now time.Time, window time.Duration) ([]domain.Product, error) {
	if m.listExpiringSoonFn != nil {
		return m.listExpiringSoonFn(ctx, now, window)
	}
	return nil, nil
}

func (m *mockProductRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.Product, error) {
	if m.listExpiredFn != nil {
		return m.listExpiredFn(ctx, now)
	}
	return nil, nil
}

func (m *mockProductRepo) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	if m.listLowStockFn != nil {
		return m.listLowStockFn(ctx)
	}
	return nil, nil
}

func (m *mockProductRepo) ApplyStock(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error) {
	if m.applyStockFn != nil {
		return m.applyStockFn(ctx, productID, txType, quantity, reason, accountID)
	}
	return nil, nil, fmt.Errorf("not implemented")
}

func (m *mockProductRepo) Stats(ctx context.Context, now time.Time, window time.Duration) (*domain.ProductStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, now, window)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockTransactionRepo struct {
	listFn func(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error)
}

func (m *mockTransactionRepo) List(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx, productID, limit)
	}
	return nil, nil
}

type mockAlertRepo struct {
	generateFn            func(ctx context.Context, productIDs []uuid.UUID, alertType domain.AlertType) (int, error)
	listUnreadFn          func(ctx context.Context, limit int) ([]domain.ExpiryAlert, error)
	listUnreadByTypeFn    func(ctx context.Context, alertType domain.AlertType, limit int) ([]domain.ExpiryAlert, error)
	countUnreadFn         func(ctx context.Context) (int, error)
	markReadFn            func(ctx context.Context, id int64) (*domain.ExpiryAlert, error)
	markAllReadFn         func(ctx context.Context) (int, error)
	deleteReadOlderThanFn func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *mockAlertRepo) Generate(ctx context.Context, productIDs []uuid.UUID, alertType domain.AlertType) (int, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, productIDs, alertType)
	}
	return 0, nil
}

func (m *mockAlertRepo) ListUnread(ctx context.Context, limit int) ([]domain.ExpiryAlert, error) {
	if m.listUnreadFn != nil {
		return m.listUnreadFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockAlertRepo) ListUnreadByType(ctx context.Context, alertType domain.AlertType, limit int) ([]domain.ExpiryAlert, error) {
	if m.listUnreadByTypeFn != nil {
		return m.listUnreadByTypeFn(ctx, alertType, limit)
	}
	return nil, nil
}

func (m *mockAlertRepo) CountUnread(ctx context.Context) (int, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx)
	}
	return 0, nil
}

func (m *mockAlertRepo) MarkRead(ctx context.Context, id int64) (*domain.ExpiryAlert, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAlertRepo) MarkAllRead(ctx context.Context) (int, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx)
	}
	return 0, nil
}

func (m *mockAlertRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if m.deleteReadOlderThanFn != nil {
		return m.deleteReadOlderThanFn(ctx, cutoff)
	}
	return 0, nil
}

type mockTicketRepo struct {
	createFn  func(ctx context.Context, ticket *domain.ProductTicket) (*domain.ProductTicket, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.ProductTicket, error)
	listFn    func(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.ProductTicket) (*domain.ProductTicket, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ticket)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id int64) (*domain.ProductTicket, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTicketRepo) List(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error) {
	if m.listFn != nil {
		return m.listFn(ctx, productID, limit)
	}
	return nil, nil
}

type mockDashboardCache struct {
	getFn         func(ctx context.Context, load func(context.Context) (*domain.DashboardStats, error)) (*domain.DashboardStats, error)
	invalidations int
}

func (m *mockDashboardCache) Get(ctx context.Context, load func(context.Context) (*domain.DashboardStats, error)) (*domain.DashboardStats, error) {
	if m.getFn != nil {
		return m.getFn(ctx, load)
	}
	return load(ctx)
}

func (m *mockDashboardCache) Invalidate(_ context.Context) error {
	m.invalidations++
	return nil
}
