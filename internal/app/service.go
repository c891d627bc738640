package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Ayesha-te/ims-backend/internal/auth"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	"github.com/Ayesha-te/ims-backend/internal/ticket"
)

const recentActivityLimit = 10

// DashboardCache is the caching contract the service needs; implemented by
// the Redis adapter.
type DashboardCache interface {
	Get(ctx context.Context, load func(context.Context) (*domain.DashboardStats, error)) (*domain.DashboardStats, error)
	Invalidate(ctx context.Context) error
}

// Service is the application layer, the only component that references
// multiple repositories. It orchestrates all use cases.
type Service struct {
	accounts     domain.AccountRepository
	categories   domain.CategoryRepository
	suppliers    domain.SupplierRepository
	products     domain.ProductRepository
	transactions domain.TransactionRepository
	alerts       domain.AlertRepository
	tickets      domain.TicketRepository
	cache        DashboardCache
	issuer       *auth.TokenIssuer
	clock        clockwork.Clock
	expiryWindow time.Duration
}

// NewService creates the application layer service. cache may be nil when
// Redis is not configured; dashboard reads then always hit PostgreSQL.
func NewService(
	accounts domain.AccountRepository,
	categories domain.CategoryRepository,
	suppliers domain.SupplierRepository,
	products domain.ProductRepository,
	transactions domain.TransactionRepository,
	alerts domain.AlertRepository,
	tickets domain.TicketRepository,
	cache DashboardCache,
	issuer *auth.TokenIssuer,
	clock clockwork.Clock,
	expiryWindow time.Duration,
) *Service {
	return &Service{
		accounts:     accounts,
		categories:   categories,
		suppliers:    suppliers,
		products:     products,
		transactions: transactions,
		alerts:       alerts,
		tickets:      tickets,
		cache:        cache,
		issuer:       issuer,
		clock:        clock,
		expiryWindow: expiryWindow,
	}
}

// ---- Accounts ----

// Register creates an operator account and returns a fresh token pair.
func (s *Service) Register(ctx context.Context, email, password, storeName, address, phone string) (*domain.Account, *auth.TokenPair, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.accounts.Create(ctx, &domain.Account{
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		StoreName:    storeName,
		Address:      address,
		Phone:        phone,
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuer.IssuePair(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// Login verifies credentials and returns a fresh token pair. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Account, *auth.TokenPair, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	accountID, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	// The account must still exist
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return s.issuer.IssuePair(accountID)
}

// GetAccount retrieves an operator account by ID.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// ---- Categories ----

func (s *Service) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return s.categories.Create(ctx, c)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return s.categories.Update(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// ---- Suppliers ----

func (s *Service) CreateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	return s.suppliers.Create(ctx, sup)
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context, halalOnly bool) ([]domain.Supplier, error) {
	return s.suppliers.List(ctx, halalOnly)
}

func (s *Service) UpdateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	return s.suppliers.Update(ctx, sup)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.suppliers.Delete(ctx, id)
}

// ---- Products ----

// CreateProduct fills in the default barcode and renders the barcode and QR
// images before persisting. Image rendering failures are logged but never
// block product creation.
func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.Barcode == "" {
		p.Barcode = domain.DefaultBarcode(p.SKU)
	}

	if img, err := ticket.RenderBarcode(p.Barcode); err != nil {
		slog.WarnContext(ctx, "Barcode image rendering failed", "barcode", p.Barcode, "error", err)
	} else {
		p.BarcodeImage = img
	}

	if img, err := ticket.RenderQR(qrPayload(p)); err != nil {
		slog.WarnContext(ctx, "QR image rendering failed", "sku", p.SKU, "error", err)
	} else {
		p.QRCodeImage = img
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return created, nil
}

// qrPayload is the JSON document embedded in a product's QR code. Scanners
// post it back verbatim to the scan endpoint.
func qrPayload(p *domain.Product) string {
	doc := map[string]string{
		"sku":     p.SKU,
		"barcode": p.Barcode,
		"name":    p.Name,
	}
	encoded, _ := json.Marshal(doc)
	return string(encoded)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// ScanType distinguishes raw barcode scans from QR payload scans.
type ScanType string

const (
	ScanBarcode ScanType = "BARCODE"
	ScanQRCode  ScanType = "QR_CODE"
)

// Scan resolves a scanned code to a product. QR payloads are JSON documents
// carrying the barcode (and optionally the product ID); raw barcodes are
// looked up directly.
func (s *Service) Scan(ctx context.Context, code string, scanType ScanType) (*domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrProductNotFound
	}

	if scanType == ScanQRCode {
		var doc struct {
			ID      string `json:"id"`
			Barcode string `json:"barcode"`
		}
		if err := json.Unmarshal([]byte(code), &doc); err == nil {
			if doc.Barcode != "" {
				return s.products.GetByBarcode(ctx, doc.Barcode)
			}
			if id, err := uuid.Parse(doc.ID); err == nil {
				return s.products.GetByID(ctx, id)
			}
			return nil, domain.ErrProductNotFound
		}
		// Fall through: some scanners deliver the plain barcode even for QR
	}

	return s.products.GetByBarcode(ctx, code)
}

func (s *Service) ListExpiringSoon(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListExpiringSoon(ctx, s.clock.Now(), s.expiryWindow)
}

func (s *Service) ListExpired(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListExpired(ctx, s.clock.Now())
}

func (s *Service) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListLowStock(ctx)
}

// UpdateStock applies a stock mutation with its audit record and invalidates
// the dashboard cache.
func (s *Service) UpdateStock(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error) {
	product, record, err := s.products.ApplyStock(ctx, productID, txType, quantity, reason, accountID)
	if err != nil {
		return nil, nil, err
	}
	s.invalidateDashboard(ctx)
	return product, record, nil
}

func (s *Service) ListTransactions(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.transactions.List(ctx, productID, limit)
}

// ---- Tickets ----

// GenerateTicket freezes the product's label data, including fresh barcode
// and QR images, into a persisted snapshot.
func (s *Service) GenerateTicket(ctx context.Context, productID uuid.UUID, accountID uuid.UUID) (*domain.ProductTicket, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.suppliers.GetByID(ctx, product.SupplierID)
	if err != nil {
		return nil, err
	}

	barcodeImage := product.BarcodeImage
	if barcodeImage == "" {
		if barcodeImage, err = ticket.RenderBarcode(product.Barcode); err != nil {
			return nil, fmt.Errorf("ticket barcode rendering failed: %w", err)
		}
	}
	qrImage := product.QRCodeImage
	if qrImage == "" {
		if qrImage, err = ticket.RenderQR(qrPayload(product)); err != nil {
			return nil, fmt.Errorf("ticket QR rendering failed: %w", err)
		}
	}

	halalStatus := "NOT CERTIFIED"
	if product.IsHalal {
		halalStatus = "HALAL CERTIFIED"
	}

	data := domain.TicketData{
		ProductName:  product.Name,
		SKU:          product.SKU,
		Barcode:      product.Barcode,
		BarcodeImage: barcodeImage,
		QRCodeImage:  qrImage,
		PriceCents:   product.PriceCents,
		HalalStatus:  halalStatus,
		Category:     category.Name,
		Supplier:     supplier.Name,
		GeneratedAt:  s.clock.Now().UTC().Format(time.RFC3339),
	}
	if product.ExpiryDate != nil {
		data.ExpiryDate = product.ExpiryDate.Format("2006-01-02")
	}

	return s.tickets.Create(ctx, &domain.ProductTicket{
		ProductID: productID,
		Data:      data,
		CreatedBy: accountID,
	})
}

func (s *Service) GetTicket(ctx context.Context, id int64) (*domain.ProductTicket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *Service) ListTickets(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.tickets.List(ctx, productID, limit)
}

// ---- Alerts ----

// AlertSweepReport summarizes one alert generation pass.
type AlertSweepReport struct {
	ExpiringSoonCreated int `json:"expiring_soon_created"`
	ExpiredCreated      int `json:"expired_created"`
}

// GenerateAlerts creates missing alerts for products expiring within the
// window and products already expired. Repeated runs are idempotent.
func (s *Service) GenerateAlerts(ctx context.Context) (*AlertSweepReport, error) {
	return s.GenerateAlertsWithWindow(ctx, s.expiryWindow)
}

// GenerateAlertsWithWindow is GenerateAlerts with an explicit window, used by
// the sweep CLI's -days flag.
func (s *Service) GenerateAlertsWithWindow(ctx context.Context, window time.Duration) (*AlertSweepReport, error) {
	now := s.clock.Now()
	report := &AlertSweepReport{}

	expiring, err := s.products.ListExpiringSoon(ctx, now, window)
	if err != nil {
		return nil, err
	}
	if report.ExpiringSoonCreated, err = s.alerts.Generate(ctx, productIDs(expiring), domain.AlertExpiringSoon); err != nil {
		return nil, err
	}

	expired, err := s.products.ListExpired(ctx, now)
	if err != nil {
		return nil, err
	}
	if report.ExpiredCreated, err = s.alerts.Generate(ctx, productIDs(expired), domain.AlertExpired); err != nil {
		return nil, err
	}

	return report, nil
}

func productIDs(products []domain.Product) []uuid.UUID {
	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	return ids
}

func (s *Service) ListAlerts(ctx context.Context, limit int) ([]domain.ExpiryAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.alerts.ListUnread(ctx, limit)
}

func (s *Service) MarkAlertRead(ctx context.Context, id int64) (*domain.ExpiryAlert, error) {
	return s.alerts.MarkRead(ctx, id)
}

func (s *Service) MarkAllAlertsRead(ctx context.Context) (int, error) {
	return s.alerts.MarkAllRead(ctx)
}

// CleanupAlerts prunes read alerts older than the retention window and
// returns how many were removed.
func (s *Service) CleanupAlerts(ctx context.Context, retention time.Duration) (int, error) {
	return s.alerts.DeleteReadOlderThan(ctx, s.clock.Now().Add(-retention))
}

// AlertsSummary groups unread alerts by type for the dashboard.
func (s *Service) AlertsSummary(ctx context.Context) (*domain.AlertSummary, error) {
	expiring, err := s.alerts.ListUnreadByType(ctx, domain.AlertExpiringSoon, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	expired, err := s.alerts.ListUnreadByType(ctx, domain.AlertExpired, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.alerts.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.AlertSummary{
		ExpiringSoon: domain.AlertGroup{Count: len(expiring), Alerts: expiring},
		Expired:      domain.AlertGroup{Count: len(expired), Alerts: expired},
		TotalUnread:  total,
	}, nil
}

// ---- Dashboard ----

// DashboardStats returns the dashboard snapshot, served from cache when
// possible.
func (s *Service) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache == nil {
		return s.loadDashboardStats(ctx)
	}
	return s.cache.Get(ctx, s.loadDashboardStats)
}

func (s *Service) loadDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.products.Stats(ctx, s.clock.Now(), s.expiryWindow)
	if err != nil {
		return nil, err
	}

	if stats.CategoriesCount, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if stats.HalalSuppliersCount, err = s.suppliers.CountHalalCertified(ctx); err != nil {
		return nil, err
	}

	recentTx, err := s.transactions.List(ctx, nil, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	recentAlerts, err := s.alerts.ListUnread(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		ProductStats:       *stats,
		RecentTransactions: recentTx,
		RecentAlerts:       recentAlerts,
		GeneratedAt:        s.clock.Now().UTC(),
	}, nil
}

func (s *Service) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "Dashboard cache invalidation failed", "error", err)
	}
}
