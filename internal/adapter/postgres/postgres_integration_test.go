package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

var (
	testPool        *pgxpool.Pool
	testDatabaseURL string
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	postgresContainer, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate postgres container: %v\n", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get connection string: %v\n", err)
		os.Exit(1)
	}
	testDatabaseURL = connStr

	testPool, err = Connect(ctx, testDatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	defer testPool.Close()

	if err := RunMigrationsWithLock(ctx, testPool); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestDB returns the shared pool and registers cleanup to truncate tables.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	t.Cleanup(func() {
		ctx := context.Background()
		_, err := testPool.Exec(ctx,
			"TRUNCATE accounts, categories, suppliers, products, stock_transactions, expiry_alerts, product_tickets CASCADE")
		if err != nil {
			t.Logf("Failed to truncate tables: %v", err)
		}
	})

	return testPool
}

// seedProduct inserts the reference rows a product depends on and the product
// itself, returning everything a stock or alert test needs.
func seedProduct(t *testing.T, pool *pgxpool.Pool) (*domain.Product, *domain.Account) {
	t.Helper()
	ctx := context.Background()

	account, err := NewAccountRepo(pool).Create(ctx, &domain.Account{
		Email:        "owner@example.com",
		PasswordHash: "x",
		StoreName:    "Test Store",
	})
	require.NoError(t, err)

	category, err := NewCategoryRepo(pool).Create(ctx, &domain.Category{Name: "Meat"})
	require.NoError(t, err)

	supplier, err := NewSupplierRepo(pool).Create(ctx, &domain.Supplier{
		Name:           "Halal Farms",
		HalalCertified: true,
	})
	require.NoError(t, err)

	expiry := time.Now().AddDate(0, 0, 10)
	product, err := NewProductRepo(pool).Create(ctx, &domain.Product{
		Name:         "Chicken Breast",
		CategoryID:   category.ID,
		SupplierID:   supplier.ID,
		IsHalal:      true,
		SKU:          "SKU-001",
		Barcode:      domain.DefaultBarcode("SKU-001"),
		PriceCents:   1599,
		CostCents:    899,
		CurrentStock: 50,
		MinimumStock: 10,
		MaximumStock: 200,
		ExpiryDate:   &expiry,
	})
	require.NoError(t, err)

	return product, account
}

func TestRunMigrations_Idempotency(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	require.NoError(t, RunMigrationsWithLock(ctx, testPool))
	require.NoError(t, RunMigrationsWithLock(ctx, testPool))
}

func TestAccountRepo_DuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepo(pool)

	_, err := repo.Create(ctx, &domain.Account{Email: "Dup@Example.com", PasswordHash: "x", StoreName: "A"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Account{Email: "dup@example.com", PasswordHash: "x", StoreName: "B"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// Email lookup is case insensitive
	account, err := repo.GetByEmail(ctx, "DUP@example.com")
	require.NoError(t, err)
	assert.Equal(t, "dup@example.com", account.Email)
}

func TestProductRepo_CreateAndLookup(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, _ := seedProduct(t, pool)
	assert.Equal(t, "HALALSKU-001", product.Barcode)

	repo := NewProductRepo(pool)

	byID, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.SKU, byID.SKU)

	byBarcode, err := repo.GetByBarcode(ctx, product.Barcode)
	require.NoError(t, err)
	assert.Equal(t, product.ID, byBarcode.ID)

	_, err = repo.Create(ctx, &domain.Product{
		Name: "Copy", CategoryID: product.CategoryID, SupplierID: product.SupplierID,
		IsHalal: true, SKU: "SKU-001", Barcode: "OTHER",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestProductRepo_DeactivateHidesProduct(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, _ := seedProduct(t, pool)
	repo := NewProductRepo(pool)

	require.NoError(t, repo.Deactivate(ctx, product.ID))

	_, err := repo.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Second deactivation of the same product reports not found
	assert.ErrorIs(t, repo.Deactivate(ctx, product.ID), domain.ErrProductNotFound)
}

func TestProductRepo_ApplyStock(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, account := seedProduct(t, pool)
	repo := NewProductRepo(pool)

	updated, record, err := repo.ApplyStock(ctx, product.ID, domain.TxOut, 20, "sold", account.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.CurrentStock)
	assert.Equal(t, 50, record.PreviousStock)
	assert.Equal(t, 30, record.NewStock)
	assert.Equal(t, domain.TxOut, record.Type)

	// OUT beyond available stock is rejected and leaves no trace
	_, _, err = repo.ApplyStock(ctx, product.ID, domain.TxOut, 100, "oversell", account.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, after.CurrentStock)

	transactions, err := NewTransactionRepo(pool).List(ctx, &product.ID, 10)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)

	// ADJUSTMENT sets an absolute level
	updated, _, err = repo.ApplyStock(ctx, product.ID, domain.TxAdjustment, 75, "recount", account.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, updated.CurrentStock)
}

func TestAlertRepo_GenerateIsIdempotent(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, _ := seedProduct(t, pool)
	repo := NewAlertRepo(pool)

	created, err := repo.Generate(ctx, []uuid.UUID{product.ID}, domain.AlertExpiringSoon)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = repo.Generate(ctx, []uuid.UUID{product.ID}, domain.AlertExpiringSoon)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	alerts, err := repo.ListUnread(ctx, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Chicken Breast", alerts[0].ProductName)

	marked, err := repo.MarkRead(ctx, alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	count, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.MarkRead(ctx, 99999)
	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestAlertRepo_DeleteReadOlderThan(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, _ := seedProduct(t, pool)
	repo := NewAlertRepo(pool)

	_, err := repo.Generate(ctx, []uuid.UUID{product.ID}, domain.AlertExpired)
	require.NoError(t, err)

	// Unread alerts survive the prune regardless of age
	deleted, err := repo.DeleteReadOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	_, err = repo.MarkAllRead(ctx)
	require.NoError(t, err)

	deleted, err = repo.DeleteReadOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestProductRepo_Stats(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, _ := seedProduct(t, pool)
	repo := NewProductRepo(pool)

	stats, err := repo.Stats(ctx, time.Now(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.ExpiringSoonCount)
	assert.Equal(t, 0, stats.ExpiredCount)
	assert.Equal(t, int64(50*899), stats.TotalStockValue)
	assert.Equal(t, 1, stats.NormalStockCount)

	// Draining the stock moves the product into the out-of-stock bucket
	account, err := NewAccountRepo(pool).GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	_, _, err = repo.ApplyStock(ctx, product.ID, domain.TxAdjustment, 0, "clear", account.ID)
	require.NoError(t, err)

	stats, err = repo.Stats(ctx, time.Now(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.Equal(t, 1, stats.LowStockProducts)
}

func TestTicketRepo_SnapshotRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	product, account := seedProduct(t, pool)
	repo := NewTicketRepo(pool)

	created, err := repo.Create(ctx, &domain.ProductTicket{
		ProductID: product.ID,
		Data: domain.TicketData{
			ProductName: product.Name,
			SKU:         product.SKU,
			Barcode:     product.Barcode,
			PriceCents:  product.PriceCents,
			HalalStatus: "HALAL CERTIFIED",
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		CreatedBy: account.ID,
	})
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", fetched.Data.SKU)
	assert.Equal(t, "HALAL CERTIFIED", fetched.Data.HalalStatus)

	tickets, err := repo.List(ctx, &product.ID, 10)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}
