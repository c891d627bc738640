package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

const supplierColumns = `id, name, contact_person, phone, email, address, halal_certified, certification_number, created_at`

// SupplierRepo implements domain.SupplierRepository backed by PostgreSQL.
type SupplierRepo struct {
	pool *pgxpool.Pool
}

func NewSupplierRepo(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.Email,
		&s.Address, &s.HalalCertified, &s.CertificationNumber, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	created, err := scanSupplier(r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_person, phone, email, address, halal_certified, certification_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+supplierColumns,
		s.Name, s.ContactPerson, s.Phone, s.Email, s.Address, s.HalalCertified, s.CertificationNumber))
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateSupplier
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return created, nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	s, err := scanSupplier(r.pool.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier by ID: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	s, err := scanSupplier(r.pool.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier by name: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) List(ctx context.Context, halalOnly bool) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	if halalOnly {
		query += ` WHERE halal_certified`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0)
	for rows.Next() {
		var s domain.Supplier
		err := rows.Scan(
			&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.Email,
			&s.Address, &s.HalalCertified, &s.CertificationNumber, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	updated, err := scanSupplier(r.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $1, contact_person = $2, phone = $3, email = $4, address = $5,
		    halal_certified = $6, certification_number = $7
		WHERE id = $8
		RETURNING `+supplierColumns,
		s.Name, s.ContactPerson, s.Phone, s.Email, s.Address,
		s.HalalCertified, s.CertificationNumber, s.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return updated, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return domain.ErrSupplierInUse
	}
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func (r *SupplierRepo) CountHalalCertified(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE halal_certified`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count halal certified suppliers: %w", err)
	}
	return count, nil
}
