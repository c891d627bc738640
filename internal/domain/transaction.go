package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType describes how a stock mutation changes the on-hand count.
type TransactionType string

const (
	TxIn         TransactionType = "IN"
	TxOut        TransactionType = "OUT"
	TxAdjustment TransactionType = "ADJUSTMENT"
	TxExpired    TransactionType = "EXPIRED"
)

// ParseTransactionType validates a wire-format transaction type.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TxIn, TxOut, TxAdjustment, TxExpired:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// StockTransaction is an immutable audit record of a stock mutation. The
// previous and new stock values are captured inside the same database
// transaction that applied the change.
type StockTransaction struct {
	ID            int64           `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Type          TransactionType `json:"transaction_type"`
	Quantity      int             `json:"quantity"`
	PreviousStock int             `json:"previous_stock"`
	NewStock      int             `json:"new_stock"`
	Reason        string          `json:"reason"`
	AccountID     uuid.UUID       `json:"account_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Apply computes the stock level after applying the mutation to current.
// OUT and EXPIRED remove stock, ADJUSTMENT sets an absolute level.
func (t TransactionType) Apply(current, quantity int) (int, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}

	switch t {
	case TxIn:
		return current + quantity, nil
	case TxOut, TxExpired:
		if quantity > current {
			return 0, ErrInsufficientStock
		}
		return current - quantity, nil
	case TxAdjustment:
		return quantity, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", string(t))
	}
}
