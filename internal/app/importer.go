package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

// ImportRowResult reports the fate of one workbook row.
type ImportRowResult struct {
	Row    int    `json:"row"`
	SKU    string `json:"sku,omitempty"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ImportReport summarizes an Excel product import.
type ImportReport struct {
	FileName string            `json:"file_name"`
	Created  int               `json:"created"`
	Skipped  int               `json:"skipped"`
	Rows     []ImportRowResult `json:"rows"`
}

const (
	importStatusCreated = "created"
	importStatusSkipped = "skipped"
)

// importColumns maps recognized header names to canonical keys. Headers are
// matched case-insensitively with spaces collapsed to underscores.
var importColumns = map[string]string{
	"name":                 "name",
	"product_name":         "name",
	"description":          "description",
	"sku":                  "sku",
	"barcode":              "barcode",
	"category":             "category",
	"supplier":             "supplier",
	"price":                "price",
	"selling_price":        "price",
	"cost":                 "cost",
	"cost_price":           "cost",
	"quantity":             "current_stock",
	"current_stock":        "current_stock",
	"minimum_stock":        "minimum_stock",
	"maximum_stock":        "maximum_stock",
	"expiry_date":          "expiry_date",
	"manufacturing_date":   "manufacturing_date",
	"halal_certified":      "halal_certified",
	"halal_cert_number":    "halal_cert_number",
	"certification_number": "halal_cert_number",
}

var importDateLayouts = []string{"2006-01-02", "02-01-2006", "01/02/2006", "2006/01/02"}

// ImportExcel parses an xlsx workbook and creates one product per row. The
// first row must be a header; rows that cannot be imported are reported but
// never abort the rest of the workbook.
func (s *Service) ImportExcel(ctx context.Context, fileName string, data []byte) (*ImportReport, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close() //nolint:errcheck

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, errors.New("workbook has no data rows")
	}

	header := parseImportHeader(rows[0])
	if _, ok := header["name"]; !ok {
		return nil, errors.New("workbook is missing a name column")
	}
	if _, ok := header["sku"]; !ok {
		return nil, errors.New("workbook is missing a sku column")
	}

	report := &ImportReport{FileName: fileName}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		result := s.importRow(ctx, header, row, rowNum)
		if result.Status == importStatusCreated {
			report.Created++
		} else {
			report.Skipped++
		}
		report.Rows = append(report.Rows, result)
	}

	return report, nil
}

func parseImportHeader(row []string) map[string]int {
	header := make(map[string]int)
	for i, cell := range row {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		if canonical, ok := importColumns[key]; ok {
			header[canonical] = i
		}
	}
	return header
}

func (s *Service) importRow(ctx context.Context, header map[string]int, row []string, rowNum int) ImportRowResult {
	cell := func(key string) string {
		idx, ok := header[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	sku := cell("sku")
	result := ImportRowResult{Row: rowNum, SKU: sku, Status: importStatusSkipped}

	name := cell("name")
	if name == "" || sku == "" {
		result.Reason = "name and sku are required"
		return result
	}

	priceCents, err := parseCents(cell("price"))
	if err != nil {
		result.Reason = fmt.Sprintf("bad price: %v", err)
		return result
	}
	costCents, err := parseCents(cell("cost"))
	if err != nil {
		result.Reason = fmt.Sprintf("bad cost: %v", err)
		return result
	}

	category, err := s.getOrCreateCategory(ctx, cell("category"))
	if err != nil {
		result.Reason = fmt.Sprintf("category: %v", err)
		return result
	}
	supplier, err := s.getOrCreateSupplier(ctx, cell("supplier"))
	if err != nil {
		result.Reason = fmt.Sprintf("supplier: %v", err)
		return result
	}

	product := &domain.Product{
		Name:            name,
		Description:     cell("description"),
		CategoryID:      category.ID,
		SupplierID:      supplier.ID,
		IsHalal:         parseImportBool(cell("halal_certified")),
		HalalCertNumber: cell("halal_cert_number"),
		SKU:             sku,
		Barcode:         cell("barcode"),
		PriceCents:      priceCents,
		CostCents:       costCents,
		CurrentStock:    parseImportInt(cell("current_stock"), 0),
		MinimumStock:    parseImportInt(cell("minimum_stock"), 10),
		MaximumStock:    parseImportInt(cell("maximum_stock"), 1000),
	}
	if d, ok := parseImportDate(cell("expiry_date")); ok {
		product.ExpiryDate = &d
	}
	if d, ok := parseImportDate(cell("manufacturing_date")); ok {
		product.ManufacturingDate = &d
	}

	if _, err := s.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicateSKU) {
			result.Reason = "sku already in use"
		} else {
			result.Reason = err.Error()
		}
		return result
	}

	result.Status = importStatusCreated
	return result
}

func (s *Service) getOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, errors.New("missing category name")
	}

	category, err := s.categories.GetByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category, err = s.categories.Create(ctx, &domain.Category{Name: name})
	if errors.Is(err, domain.ErrDuplicateCategory) {
		// Lost a creation race, the row now exists
		return s.categories.GetByName(ctx, name)
	}
	return category, err
}

func (s *Service) getOrCreateSupplier(ctx context.Context, name string) (*domain.Supplier, error) {
	if name == "" {
		return nil, errors.New("missing supplier name")
	}

	supplier, err := s.suppliers.GetByName(ctx, name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, domain.ErrSupplierNotFound) {
		return nil, err
	}

	supplier, err = s.suppliers.Create(ctx, &domain.Supplier{Name: name})
	if errors.Is(err, domain.ErrDuplicateSupplier) {
		return s.suppliers.GetByName(ctx, name)
	}
	return supplier, err
}

// parseCents converts a decimal money string (e.g. "15.99") to cents.
func parseCents(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount: %q", value)
	}
	return int64(math.Round(f * 100)), nil
}

func parseImportInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func parseImportBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "y", "1", "halal":
		return true
	default:
		return false
	}
}

func parseImportDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range importDateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
