package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a supermarket operator login. PasswordHash is a bcrypt digest
// and never leaves the process.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	StoreName    string    `json:"store_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
