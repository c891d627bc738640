package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

// productColumns must match the Scan order in scanProduct.
const productColumns = `id, name, description, category_id, supplier_id,
	is_halal, halal_cert_number, halal_verified_at,
	sku, barcode, price_cents, cost_cents,
	current_stock, minimum_stock, maximum_stock,
	manufacturing_date, expiry_date, barcode_image, qr_code_image,
	is_active, created_at, updated_at`

// visibleProducts restricts queries to the catalog the API exposes: active
// products that passed halal verification.
const visibleProducts = `is_active AND is_halal`

// ProductRepo implements domain.ProductRepository backed by PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// missingReferenceError maps a products foreign key violation to the parent
// row the write pointed at.
func missingReferenceError(constraint string) error {
	if strings.Contains(constraint, "supplier") {
		return domain.ErrSupplierNotFound
	}
	return domain.ErrCategoryNotFound
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID,
		&p.IsHalal, &p.HalalCertNumber, &p.HalalVerifiedAt,
		&p.SKU, &p.Barcode, &p.PriceCents, &p.CostCents,
		&p.CurrentStock, &p.MinimumStock, &p.MaximumStock,
		&p.ManufacturingDate, &p.ExpiryDate, &p.BarcodeImage, &p.QRCodeImage,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	created, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (
			name, description, category_id, supplier_id,
			is_halal, halal_cert_number, halal_verified_at,
			sku, barcode, price_cents, cost_cents,
			current_stock, minimum_stock, maximum_stock,
			manufacturing_date, expiry_date, barcode_image, qr_code_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+productColumns,
		p.Name, p.Description, p.CategoryID, p.SupplierID,
		p.IsHalal, p.HalalCertNumber, p.HalalVerifiedAt,
		p.SKU, p.Barcode, p.PriceCents, p.CostCents,
		p.CurrentStock, p.MinimumStock, p.MaximumStock,
		p.ManufacturingDate, p.ExpiryDate, p.BarcodeImage, p.QRCodeImage))
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateSKU
	}
	if constraint, ok := violatedForeignKey(err); ok {
		return nil, missingReferenceError(constraint)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND `+visibleProducts, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE barcode = $1 AND `+visibleProducts, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by barcode: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + visibleProducts
	args := make([]any, 0, 3)

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		query += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	if filter.LowStock {
		query += " AND current_stock <= minimum_stock"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	return r.queryProducts(ctx, query, args...)
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	updated, err := scanProduct(r.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $1, description = $2, category_id = $3, supplier_id = $4,
		    is_halal = $5, halal_cert_number = $6, halal_verified_at = $7,
		    price_cents = $8, cost_cents = $9,
		    minimum_stock = $10, maximum_stock = $11,
		    manufacturing_date = $12, expiry_date = $13,
		    updated_at = NOW()
		WHERE id = $14 AND is_active
		RETURNING `+productColumns,
		p.Name, p.Description, p.CategoryID, p.SupplierID,
		p.IsHalal, p.HalalCertNumber, p.HalalVerifiedAt,
		p.PriceCents, p.CostCents,
		p.MinimumStock, p.MaximumStock,
		p.ManufacturingDate, p.ExpiryDate, p.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if constraint, ok := violatedForeignKey(err); ok {
		return nil, missingReferenceError(constraint)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

// Deactivate soft-deletes the product. Historic transactions and tickets
// keep referencing it.
func (r *ProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) ListExpiringSoon(ctx context.Context, now time.Time, window time.Duration) ([]domain.Product, error) {
	today := domain.DayStart(now)
	cutoff := today.Add(window)
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE `+visibleProducts+` AND expiry_date > $1 AND expiry_date <= $2
		 ORDER BY expiry_date`, today, cutoff)
}

func (r *ProductRepo) ListExpired(ctx context.Context, now time.Time) ([]domain.Product, error) {
	today := domain.DayStart(now)
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE `+visibleProducts+` AND expiry_date < $1
		 ORDER BY expiry_date`, today)
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE `+visibleProducts+` AND current_stock <= minimum_stock
		 ORDER BY current_stock`)
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// ApplyStock mutates stock under a row lock and records the audit row in the
// same transaction. An OUT exceeding the available stock fails with
// domain.ErrInsufficientStock and leaves the row untouched.
func (r *ProductRepo) ApplyStock(ctx context.Context, productID uuid.UUID, txType domain.TransactionType, quantity int, reason string, accountID uuid.UUID) (*domain.Product, *domain.StockTransaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var current int
	err = tx.QueryRow(ctx,
		`SELECT current_stock FROM products WHERE id = $1 AND `+visibleProducts+` FOR UPDATE`,
		productID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock product row: %w", err)
	}

	newStock, err := txType.Apply(current, quantity)
	if err != nil {
		return nil, nil, err
	}

	product, err := scanProduct(tx.QueryRow(ctx, `
		UPDATE products SET current_stock = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+productColumns, newStock, productID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update stock: %w", err)
	}

	var record domain.StockTransaction
	err = tx.QueryRow(ctx, `
		INSERT INTO stock_transactions (product_id, transaction_type, quantity, previous_stock, new_stock, reason, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, product_id, transaction_type, quantity, previous_stock, new_stock, reason, account_id, created_at`,
		productID, string(txType), quantity, current, newStock, reason, accountID,
	).Scan(
		&record.ID, &record.ProductID, &record.Type, &record.Quantity,
		&record.PreviousStock, &record.NewStock, &record.Reason,
		&record.AccountID, &record.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record stock transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return product, &record, nil
}

// Stats computes the aggregate product counters for the dashboard in a
// single scan over the visible catalog.
func (r *ProductRepo) Stats(ctx context.Context, now time.Time, window time.Duration) (*domain.ProductStats, error) {
	today := domain.DayStart(now)
	cutoff := today.Add(window)

	var s domain.ProductStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE current_stock <= minimum_stock),
			COUNT(*) FILTER (WHERE expiry_date > $1 AND expiry_date <= $2),
			COUNT(*) FILTER (WHERE expiry_date < $1),
			COALESCE(SUM(current_stock::BIGINT * cost_cents), 0),
			COUNT(*) FILTER (WHERE current_stock = 0),
			COUNT(*) FILTER (WHERE current_stock > 0 AND current_stock <= minimum_stock),
			COUNT(*) FILTER (WHERE current_stock > minimum_stock AND current_stock < maximum_stock),
			COUNT(*) FILTER (WHERE current_stock >= maximum_stock)
		FROM products
		WHERE `+visibleProducts, today, cutoff,
	).Scan(
		&s.TotalProducts, &s.LowStockProducts, &s.ExpiringSoonCount, &s.ExpiredCount,
		&s.TotalStockValue, &s.OutOfStockCount, &s.LowStockCount,
		&s.NormalStockCount, &s.OverstockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product stats: %w", err)
	}
	return &s, nil
}
