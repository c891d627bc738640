package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

const transactionColumns = `id, product_id, transaction_type, quantity, previous_stock, new_stock, reason, account_id, created_at`

// TransactionRepo implements domain.TransactionRepository backed by PostgreSQL.
// Rows are written by ProductRepo.ApplyStock; this repository only reads.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

func NewTransactionRepo(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

func (r *TransactionRepo) List(ctx context.Context, productID *uuid.UUID, limit int) ([]domain.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions`
	args := make([]any, 0, 2)

	if productID != nil {
		args = append(args, *productID)
		query += fmt.Sprintf(" WHERE product_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.StockTransaction, 0)
	for rows.Next() {
		var t domain.StockTransaction
		err := rows.Scan(
			&t.ID, &t.ProductID, &t.Type, &t.Quantity,
			&t.PreviousStock, &t.NewStock, &t.Reason,
			&t.AccountID, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock transactions: %w", err)
	}
	return transactions, nil
}
