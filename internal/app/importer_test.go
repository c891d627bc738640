package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportExcel(t *testing.T) {
	service, deps := newTestService(t)

	createdSKUs := make(map[string]bool)
	deps.products.createFn = func(_ context.Context, p *domain.Product) (*domain.Product, error) {
		if createdSKUs[p.SKU] {
			return nil, domain.ErrDuplicateSKU
		}
		createdSKUs[p.SKU] = true
		created := *p
		created.ID = uuid.New()
		return &created, nil
	}

	categorySeq := int64(0)
	createdCategories := make(map[string]*domain.Category)
	deps.categories.getByNameFn = func(_ context.Context, name string) (*domain.Category, error) {
		if c, ok := createdCategories[name]; ok {
			return c, nil
		}
		return nil, domain.ErrCategoryNotFound
	}
	deps.categories.createFn = func(_ context.Context, c *domain.Category) (*domain.Category, error) {
		categorySeq++
		created := &domain.Category{ID: categorySeq, Name: c.Name}
		createdCategories[c.Name] = created
		return created, nil
	}

	createdSuppliers := make(map[string]*domain.Supplier)
	deps.suppliers.createFn = func(_ context.Context, s *domain.Supplier) (*domain.Supplier, error) {
		created := &domain.Supplier{ID: int64(len(createdSuppliers) + 1), Name: s.Name}
		createdSuppliers[s.Name] = created
		return created, nil
	}
	deps.suppliers.getByNameFn = func(_ context.Context, name string) (*domain.Supplier, error) {
		if s, ok := createdSuppliers[name]; ok {
			return s, nil
		}
		return nil, domain.ErrSupplierNotFound
	}

	data := buildWorkbook(t, [][]any{
		{"Name", "SKU", "Category", "Supplier", "Price", "Cost", "Quantity", "Expiry Date", "Halal Certified"},
		{"Chicken Breast", "SKU-001", "Meat", "Halal Farms", "15.99", "8.99", "50", "2026-12-01", "yes"},
		{"Dates 500g", "SKU-002", "Dry Goods", "Halal Farms", "4.50", "2.10", "120", "", "true"},
		{"Chicken Breast", "SKU-001", "Meat", "Halal Farms", "15.99", "8.99", "50", "", "yes"},
		{"", "SKU-004", "Meat", "Halal Farms", "1.00", "0.50", "1", "", "no"},
		{"Bad Price", "SKU-005", "Meat", "Halal Farms", "abc", "0.50", "1", "", "no"},
	})

	report, err := service.ImportExcel(context.Background(), "products.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 3, report.Skipped)
	require.Len(t, report.Rows, 5)

	assert.Equal(t, "created", report.Rows[0].Status)
	assert.Equal(t, "created", report.Rows[1].Status)
	assert.Equal(t, "skipped", report.Rows[2].Status)
	assert.Equal(t, "sku already in use", report.Rows[2].Reason)
	assert.Equal(t, "skipped", report.Rows[3].Status)
	assert.Equal(t, "skipped", report.Rows[4].Status)
	assert.Contains(t, report.Rows[4].Reason, "bad price")

	// Categories and suppliers are created on first sight and reused after
	assert.Len(t, createdCategories, 2)
	assert.Len(t, createdSuppliers, 1)
}

func TestImportExcel_RejectsMissingColumns(t *testing.T) {
	service, _ := newTestService(t)

	data := buildWorkbook(t, [][]any{
		{"Name", "Price"},
		{"Something", "1.00"},
	})

	_, err := service.ImportExcel(context.Background(), "bad.xlsx", data)
	assert.ErrorContains(t, err, "sku")
}

func TestImportExcel_RejectsGarbage(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ImportExcel(context.Background(), "junk.bin", []byte("not a workbook"))
	assert.Error(t, err)
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"15.99", 1599, false},
		{"0", 0, false},
		{"", 0, false},
		{"1,299.50", 129950, false},
		{"abc", 0, true},
		{"-1.00", 0, true},
	}

	for _, tt := range tests {
		got, err := parseCents(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
