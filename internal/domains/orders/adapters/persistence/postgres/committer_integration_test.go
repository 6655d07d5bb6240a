//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
	"github.com/bizdesk/go-business-records/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("bizdesk_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) uuid.UUID {
	t.Helper()
	repo := catalogpostgres.NewRepository(db)
	product := &catalogdomain.Product{
		ID:            uuid.New(),
		Name:          "Widget",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: stock,
		CompanyID:     uuid.New(),
	}
	_, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return product.ID
}

func pendingOrder(productID uuid.UUID, quantity int) *domain.Order {
	orderID := uuid.New()
	unit := decimal.RequireFromString("10.00")
	lineTotal := unit.Mul(decimal.NewFromInt(int64(quantity)))
	return &domain.Order{
		ID:          orderID,
		OrderNumber: "ORD-2506010930-" + orderID.String()[:4],
		OrderDate:   time.Now().UTC(),
		Customer: domain.CustomerInfo{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Province: "ON", City: "Toronto", Street: "10 King St", PhoneNumber: "5550100",
		},
		Status:     domain.StatusPending,
		TotalPrice: lineTotal,
		Items: []domain.OrderItem{{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		}},
	}
}

func TestCommitter_CommitAndReadBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, 5)
	committer := NewCommitter(db)
	repo := NewRepository(db)
	ctx := context.Background()

	order := pendingOrder(productID, 3)
	require.NoError(t, committer.Commit(ctx, order))

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, fetched.OrderNumber)
	assert.True(t, fetched.TotalPrice.Equal(decimal.RequireFromString("30.00")))
	require.Len(t, fetched.Items, 1)
	assert.True(t, fetched.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))

	product, err := catalogpostgres.NewRepository(db).GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, product.StockQuantity)
}

func TestCommitter_RollsBackOnStockConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, 2)
	committer := NewCommitter(db)
	ctx := context.Background()

	err := committer.Commit(ctx, pendingOrder(productID, 3))
	require.ErrorIs(t, err, ports.ErrStockConflict)

	var conflict *ports.StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.Available)
	assert.Equal(t, 3, conflict.Requested)
	assert.Equal(t, "Widget", conflict.ProductName)

	product, err := catalogpostgres.NewRepository(db).GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, product.StockQuantity)

	orders, err := NewRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCommitter_ConcurrentCommitsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, 1)
	committer := NewCommitter(db)
	ctx := context.Background()

	const attempts = 4
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- committer.Commit(ctx, pendingOrder(productID, 1))
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ports.ErrStockConflict)
		}
	}
	assert.Equal(t, 1, wins)

	product, err := catalogpostgres.NewRepository(db).GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 0, product.StockQuantity)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	productID := seedProduct(t, db, 10)
	committer := NewCommitter(db)
	repo := NewRepository(db)
	ctx := context.Background()

	older := pendingOrder(productID, 1)
	older.OrderDate = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, committer.Commit(ctx, older))

	newer := pendingOrder(productID, 1)
	require.NoError(t, committer.Commit(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}
