package domain

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrAlertNotFound    = errors.New("expiry alert not found")
	ErrTicketNotFound   = errors.New("product ticket not found")
	ErrAccountNotFound  = errors.New("account not found")

	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateSKU      = errors.New("sku already in use")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrDuplicateSupplier = errors.New("supplier name already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCategoryInUse     = errors.New("category has products assigned")
	ErrSupplierInUse     = errors.New("supplier has products assigned")
)
