package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketData is the printable label snapshot frozen at generation time.
// It is persisted as a JSON document so tickets survive later product edits.
type TicketData struct {
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	Barcode      string `json:"barcode"`
	BarcodeImage string `json:"barcode_image"`
	QRCodeImage  string `json:"qr_code_image"`
	PriceCents   int64  `json:"price_cents"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	HalalStatus  string `json:"halal_status"`
	Category     string `json:"category"`
	Supplier     string `json:"supplier"`
	GeneratedAt  string `json:"generated_at"`
}

type ProductTicket struct {
	ID        int64      `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	Data      TicketData `json:"ticket_data"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}
