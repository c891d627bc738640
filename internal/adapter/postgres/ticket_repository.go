package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

const ticketColumns = `id, product_id, ticket_data, created_by, created_at`

// TicketRepo implements domain.TicketRepository backed by PostgreSQL. The
// label snapshot is stored as JSONB so it survives later product edits.
type TicketRepo struct {
	pool *pgxpool.Pool
}

func NewTicketRepo(pool *pgxpool.Pool) *TicketRepo {
	return &TicketRepo{pool: pool}
}

func scanTicket(row pgx.Row) (*domain.ProductTicket, error) {
	var t domain.ProductTicket
	err := row.Scan(&t.ID, &t.ProductID, &t.Data, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Create(ctx context.Context, ticket *domain.ProductTicket) (*domain.ProductTicket, error) {
	created, err := scanTicket(r.pool.QueryRow(ctx, `
		INSERT INTO product_tickets (product_id, ticket_data, created_by)
		VALUES ($1, $2, $3)
		RETURNING `+ticketColumns,
		ticket.ProductID, ticket.Data, ticket.CreatedBy))
	if isForeignKeyViolation(err) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create product ticket: %w", err)
	}
	return created, nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id int64) (*domain.ProductTicket, error) {
	t, err := scanTicket(r.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM product_tickets WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepo) List(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.ProductTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM product_tickets`
	args := make([]any, 0, 2)

	if productID != nil {
		args = append(args, *productID)
		query += fmt.Sprintf(" WHERE product_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list product tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]domain.ProductTicket, 0)
	for rows.Next() {
		var t domain.ProductTicket
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Data, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product tickets: %w", err)
	}
	return tickets, nil
}
