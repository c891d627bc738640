package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/app"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

const dateLayout = "2006-01-02"

const (
	defaultMinimumStock = 10
	defaultMaximumStock = 1000
)

type productRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CategoryID      int64  `json:"category_id"`
	SupplierID      int64  `json:"supplier_id"`
	IsHalal         *bool  `json:"is_halal"`
	HalalCertNumber string `json:"halal_certification_number"`
	SKU             string `json:"sku"`
	Barcode         string `json:"barcode"`
	PriceCents      int64  `json:"price_cents"`
	CostCents       int64  `json:"cost_cents"`
	CurrentStock    int    `json:"current_stock"`
	MinimumStock    *int   `json:"minimum_stock"`
	MaximumStock    *int   `json:"maximum_stock"`

	ManufacturingDate string `json:"manufacturing_date"`
	ExpiryDate        string `json:"expiry_date"`
}

func (r *productRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)

	switch {
	case r.Name == "":
		return apperrors.ValidationError("product name is required")
	case r.SKU == "":
		return apperrors.ValidationError("sku is required")
	case r.CategoryID < 1:
		return apperrors.ValidationError("category_id is required")
	case r.SupplierID < 1:
		return apperrors.ValidationError("supplier_id is required")
	case r.PriceCents < 0 || r.CostCents < 0:
		return apperrors.ValidationError("price_cents and cost_cents must not be negative")
	case r.CurrentStock < 0:
		return apperrors.ValidationError("current_stock must not be negative")
	}
	return nil
}

func (r *productRequest) toDomain() (*domain.Product, error) {
	p := &domain.Product{
		Name:            r.Name,
		Description:     r.Description,
		CategoryID:      r.CategoryID,
		SupplierID:      r.SupplierID,
		IsHalal:         true,
		HalalCertNumber: r.HalalCertNumber,
		SKU:             r.SKU,
		Barcode:         strings.TrimSpace(r.Barcode),
		PriceCents:      r.PriceCents,
		CostCents:       r.CostCents,
		CurrentStock:    r.CurrentStock,
		MinimumStock:    defaultMinimumStock,
		MaximumStock:    defaultMaximumStock,
	}

	if r.IsHalal != nil {
		p.IsHalal = *r.IsHalal
	}
	if r.MinimumStock != nil {
		p.MinimumStock = *r.MinimumStock
	}
	if r.MaximumStock != nil {
		p.MaximumStock = *r.MaximumStock
	}

	var err error
	if p.ExpiryDate, err = parseDateField(r.ExpiryDate, "expiry_date"); err != nil {
		return nil, err
	}
	if p.ManufacturingDate, err = parseDateField(r.ManufacturingDate, "manufacturing_date"); err != nil {
		return nil, err
	}

	return p, nil
}

func parseDateField(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.ValidationError(name + " must be formatted as YYYY-MM-DD")
	}
	return &d, nil
}

func (s *Server) handleListProducts(c echo.Context) error {
	var filter domain.ProductFilter

	var categoryID, supplierID int64
	if err := echo.QueryParamsBinder(c).
		Int64("category", &categoryID).
		Int64("supplier", &supplierID).
		Bool("low_stock", &filter.LowStock).
		String("search", &filter.Search).
		BindError(); err != nil {
		return apperrors.ValidationError("invalid query parameters")
	}
	if categoryID > 0 {
		filter.CategoryID = &categoryID
	}
	if supplierID > 0 {
		filter.SupplierID = &supplierID
	}

	products, err := s.app.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	product, err := req.toDomain()
	if err != nil {
		return err
	}

	created, err := s.app.CreateProduct(c.Request().Context(), product)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusCreated, created)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := s.app.GetProduct(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, product)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	product, err := req.toDomain()
	if err != nil {
		return err
	}
	product.ID = id

	updated, err := s.app.UpdateProduct(c.Request().Context(), product)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, updated)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteProduct(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type scanRequest struct {
	Code     string `json:"code"`
	ScanType string `json:"scan_type"`
}

func (s *Server) handleScanProduct(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if strings.TrimSpace(req.Code) == "" {
		return apperrors.ValidationError("code is required")
	}

	scanType := app.ScanType(req.ScanType)
	switch scanType {
	case "":
		scanType = app.ScanBarcode
	case app.ScanBarcode, app.ScanQRCode:
	default:
		return apperrors.ValidationError("scan_type must be BARCODE or QR_CODE")
	}

	product, err := s.app.Scan(c.Request().Context(), req.Code, scanType)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, product)
}

func (s *Server) handleListExpiringSoon(c echo.Context) error {
	products, err := s.app.ListExpiringSoon(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, products)
}

func (s *Server) handleListExpired(c echo.Context) error {
	products, err := s.app.ListExpired(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, products)
}

func (s *Server) handleListLowStock(c echo.Context) error {
	products, err := s.app.ListLowStock(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, products)
}
