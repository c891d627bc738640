package domain

import (
	"time"

	"github.com/google/uuid"
)

// StockStatus classifies a product's stock level against its configured
// minimum and maximum thresholds.
type StockStatus string

const (
	StockOutOfStock StockStatus = "OUT_OF_STOCK"
	StockLow        StockStatus = "LOW_STOCK"
	StockNormal     StockStatus = "NORMAL"
	StockOver       StockStatus = "OVERSTOCK"
)

// BarcodePrefix is prepended to the SKU when a product is created without an
// explicit barcode.
const BarcodePrefix = "HALAL"

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"category_id"`
	SupplierID  int64     `json:"supplier_id"`

	IsHalal         bool       `json:"is_halal"`
	HalalCertNumber string     `json:"halal_certification_number"`
	HalalVerifiedAt *time.Time `json:"halal_verified_date,omitempty"`

	SKU        string `json:"sku"`
	Barcode    string `json:"barcode"`
	PriceCents int64  `json:"price_cents"`
	CostCents  int64  `json:"cost_cents"`

	CurrentStock int `json:"current_stock"`
	MinimumStock int `json:"minimum_stock"`
	MaximumStock int `json:"maximum_stock"`

	ManufacturingDate *time.Time `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`

	// Base64 data URIs rendered once at creation time.
	BarcodeImage string `json:"barcode_image,omitempty"`
	QRCodeImage  string `json:"qr_code_image,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultBarcode returns the barcode derived from the SKU.
func DefaultBarcode(sku string) string {
	return BarcodePrefix + sku
}

// IsExpired reports whether the product's expiry date has passed. Products
// without an expiry date never expire.
func (p *Product) IsExpired(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return p.ExpiryDate.Before(DayStart(now))
}

// IsExpiringSoon reports whether the product expires within the given window
// but has not expired yet.
func (p *Product) IsExpiringSoon(now time.Time, window time.Duration) bool {
	if p.ExpiryDate == nil || p.IsExpired(now) {
		return false
	}
	cutoff := DayStart(now).Add(window)
	return !p.ExpiryDate.After(cutoff)
}

// DaysUntilExpiry returns the whole days until expiry, negative if already
// expired, and false if the product has no expiry date.
func (p *Product) DaysUntilExpiry(now time.Time) (int, bool) {
	if p.ExpiryDate == nil {
		return 0, false
	}
	days := int(p.ExpiryDate.Sub(DayStart(now)).Hours() / 24)
	return days, true
}

// IsLowStock reports whether current stock is at or below the minimum.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinimumStock
}

// Status classifies current stock against the thresholds.
func (p *Product) Status() StockStatus {
	switch {
	case p.CurrentStock == 0:
		return StockOutOfStock
	case p.IsLowStock():
		return StockLow
	case p.CurrentStock >= p.MaximumStock:
		return StockOver
	default:
		return StockNormal
	}
}

// StockValueCents is the replacement value of the stock on hand.
func (p *Product) StockValueCents() int64 {
	return int64(p.CurrentStock) * p.CostCents
}

// DayStart truncates t to midnight in t's location. All expiry predicates
// and the repository date windows anchor on the same calendar day so they
// cannot disagree near midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *int64
	SupplierID *int64
	LowStock   bool
	Search     string
}
