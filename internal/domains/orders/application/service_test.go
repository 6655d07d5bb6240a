package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

// fakeCatalog backs both validation reads and commit-time decrements so tests
// can exercise the gap between the two phases.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[uuid.UUID]*ports.ProductView
}

func newFakeCatalog(products ...*ports.ProductView) *fakeCatalog {
	c := &fakeCatalog{products: map[uuid.UUID]*ports.ProductView{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) FindProduct(_ context.Context, id uuid.UUID) (*ports.ProductView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (c *fakeCatalog) setStock(id uuid.UUID, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[id].StockQuantity = stock
}

func (c *fakeCatalog) stock(id uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[id].StockQuantity
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.OrderNumber == number {
			return order, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order)
	}
	return list, nil
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

// fakeCommitter re-checks stock under the catalog lock, mirroring the
// all-or-nothing semantics of the real committers.
type fakeCommitter struct {
	catalog *fakeCatalog
	repo    *fakeOrderRepo
	fail    error
}

func (c *fakeCommitter) Commit(_ context.Context, order *domain.Order) error {
	if c.fail != nil {
		return c.fail
	}
	c.catalog.mu.Lock()
	defer c.catalog.mu.Unlock()
	for _, item := range order.Items {
		product, ok := c.catalog.products[item.ProductID]
		if !ok || product.StockQuantity < item.Quantity {
			available := 0
			name := ""
			if ok {
				available = product.StockQuantity
				name = product.Name
			}
			return &ports.StockConflictError{
				ProductID:   item.ProductID,
				ProductName: name,
				Available:   available,
				Requested:   item.Quantity,
			}
		}
	}
	for _, item := range order.Items {
		c.catalog.products[item.ProductID].StockQuantity -= item.Quantity
	}
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	c.repo.orders[order.ID] = order
	return nil
}

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]ports.IdempotencyRecord{}}
}

func (s *fakeIdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		return nil, ports.ErrIdempotencyNotFound
	}
	return &record, nil
}

func (s *fakeIdempotencyStore) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Key] = record
	return nil
}

func newTestService(catalog *fakeCatalog, repo *fakeOrderRepo, committer ports.Committer, opts ...Option) *Service {
	return NewService(catalog, repo, committer, opts...)
}

func cartInput(lines ...types.RawCartLine) types.PlaceOrderInput {
	return types.PlaceOrderInput{
		Customer: types.CustomerInput{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Province: "ON", City: "Toronto", Street: "10 King St", PhoneNumber: "5550100",
		},
		Lines: lines,
	}
}

func TestPlaceOrder_WorkedExample(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	result, err := svc.PlaceOrder(context.Background(),
		cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "3"}))
	require.NoError(t, err)
	require.True(t, result.Placed())
	require.True(t, result.Order.TotalPrice.Equal(decimal.RequireFromString("30.00")))
	require.Equal(t, domain.StatusPending, result.Order.Status)
	require.Len(t, result.Order.Items, 1)
	require.True(t, result.Order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	require.Equal(t, 2, catalog.stock(productID))

	// A second identical cart now exceeds the remaining stock.
	result, err = svc.PlaceOrder(context.Background(),
		cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "3"}))
	require.NoError(t, err)
	require.False(t, result.Placed())
	require.Len(t, result.Rejections, 1)
	rejection := result.Rejections[0]
	require.Equal(t, domain.RejectInsufficientStock, rejection.Code)
	require.Equal(t, 2, rejection.Available)
	require.Equal(t, 3, rejection.Requested)
	require.Equal(t, 2, catalog.stock(productID))
	require.Equal(t, 1, repo.count())
}

func TestPlaceOrder_CollectsEveryRejection(t *testing.T) {
	inStock := uuid.New()
	outOfStock := uuid.New()
	missing := uuid.New()
	catalog := newFakeCatalog(
		&ports.ProductView{ID: inStock, Name: "Widget", Price: decimal.RequireFromString("10.00"), StockQuantity: 5},
		&ports.ProductView{ID: outOfStock, Name: "Gadget", Price: decimal.RequireFromString("4.50"), StockQuantity: 1},
	)
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	result, err := svc.PlaceOrder(context.Background(), cartInput(
		types.RawCartLine{ProductID: inStock.String(), Quantity: "0"},
		types.RawCartLine{ProductID: outOfStock.String(), Quantity: "2"},
		types.RawCartLine{ProductID: missing.String(), Quantity: "1"},
	))
	require.NoError(t, err)
	require.False(t, result.Placed())

	codes := make([]domain.RejectionCode, 0, len(result.Rejections))
	for _, rejection := range result.Rejections {
		codes = append(codes, rejection.Code)
	}
	require.ElementsMatch(t, []domain.RejectionCode{
		domain.RejectInvalidQuantity,
		domain.RejectInsufficientStock,
		domain.RejectProductNotFound,
	}, codes)

	// Nothing was touched.
	require.Equal(t, 5, catalog.stock(inStock))
	require.Equal(t, 1, catalog.stock(outOfStock))
	require.Equal(t, 0, repo.count())
	require.NotNil(t, result.Draft)
	require.Len(t, result.Draft.Lines, 3)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	catalog := newFakeCatalog()
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	result, err := svc.PlaceOrder(context.Background(), cartInput())
	require.NoError(t, err)
	require.False(t, result.Placed())
	require.Len(t, result.Rejections, 1)
	require.Equal(t, domain.RejectEmptyCart, result.Rejections[0].Code)
	require.Equal(t, []string{"You must select at least one product."}, result.Reasons())
}

func TestPlaceOrder_MalformedLinesDroppedSilently(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	result, err := svc.PlaceOrder(context.Background(), cartInput(
		types.RawCartLine{ProductID: "not-a-uuid", Quantity: "3"},
		types.RawCartLine{ProductID: productID.String(), Quantity: "many"},
		types.RawCartLine{ProductID: productID.String(), Quantity: "2"},
	))
	require.NoError(t, err)
	require.True(t, result.Placed())
	require.Len(t, result.Order.Items, 1)
	require.Equal(t, 2, result.Order.Items[0].Quantity)
}

func TestPlaceOrder_AllMalformedBecomesEmptyCart(t *testing.T) {
	catalog := newFakeCatalog()
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	result, err := svc.PlaceOrder(context.Background(), cartInput(
		types.RawCartLine{ProductID: "junk", Quantity: "1"},
	))
	require.NoError(t, err)
	require.False(t, result.Placed())
	require.Equal(t, domain.RejectEmptyCart, result.Rejections[0].Code)
}

func TestPlaceOrder_CommitTimeStockConflict(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	committer := &stealingCommitter{
		inner:   &fakeCommitter{catalog: catalog, repo: repo},
		catalog: catalog,
		id:      productID,
	}
	svc := newTestService(catalog, repo, committer)

	result, err := svc.PlaceOrder(context.Background(),
		cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "3"}))
	require.NoError(t, err)
	require.False(t, result.Placed())
	require.Equal(t, domain.RejectInsufficientStock, result.Rejections[0].Code)
	require.Equal(t, 1, result.Rejections[0].Available)
	require.Equal(t, 3, result.Rejections[0].Requested)
	require.Equal(t, 0, repo.count())
}

// stealingCommitter drains stock right before committing, simulating a
// concurrent order landing between validation and commit.
type stealingCommitter struct {
	inner   *fakeCommitter
	catalog *fakeCatalog
	id      uuid.UUID
	once    sync.Once
}

func (c *stealingCommitter) Commit(ctx context.Context, order *domain.Order) error {
	c.once.Do(func() { c.catalog.setStock(c.id, 1) })
	return c.inner.Commit(ctx, order)
}

func TestPlaceOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 1,
	})
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	type attempt struct {
		placed bool
		err    error
	}
	const attempts = 8
	var wg sync.WaitGroup
	outcomes := make(chan attempt, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.PlaceOrder(context.Background(),
				cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "1"}))
			outcomes <- attempt{placed: result.Placed(), err: err}
		}()
	}
	wg.Wait()
	close(outcomes)

	wins := 0
	for outcome := range outcomes {
		require.NoError(t, outcome.err)
		if outcome.placed {
			wins++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 0, catalog.stock(productID))
	require.Equal(t, 1, repo.count())
}

func TestPlaceOrder_CommitStorageFailure(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	cause := errors.New("connection reset")
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo, fail: cause})

	result, err := svc.PlaceOrder(context.Background(),
		cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "1"}))
	require.NoError(t, err)
	require.False(t, result.Placed())
	require.Equal(t, domain.RejectNotPersisted, result.Rejections[0].Code)
	require.Equal(t, []string{"An error occurred while creating the order. Please try again."}, result.Reasons())
	require.ErrorIs(t, result.CommitCause, cause)
	require.NotNil(t, result.Draft)
}

func TestPlaceOrder_PriceSnapshotSurvivesCatalogEdit(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo, &fakeCommitter{catalog: catalog, repo: repo})

	result, err := svc.PlaceOrder(context.Background(),
		cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "2"}))
	require.NoError(t, err)
	require.True(t, result.Placed())

	catalog.mu.Lock()
	catalog.products[productID].Price = decimal.RequireFromString("99.99")
	catalog.mu.Unlock()

	stored, err := svc.GetByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	require.True(t, stored.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	require.True(t, stored.TotalPrice.Equal(decimal.RequireFromString("20.00")))
}

func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo,
		&fakeCommitter{catalog: catalog, repo: repo},
		WithIdempotencyStore(newFakeIdempotencyStore()))

	input := cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "2"})
	input.IdempotencyKey = "checkout-42"

	first, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.True(t, first.Placed())

	second, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.True(t, second.Placed())
	require.Equal(t, first.Order.ID, second.Order.ID)
	require.Equal(t, 3, catalog.stock(productID))
	require.Equal(t, 1, repo.count())
}

func TestPlaceOrder_IdempotencyKeyReuseConflicts(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	svc := newTestService(catalog, repo,
		&fakeCommitter{catalog: catalog, repo: repo},
		WithIdempotencyStore(newFakeIdempotencyStore()))

	input := cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "2"})
	input.IdempotencyKey = "checkout-42"
	_, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	altered := cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "3"})
	altered.IdempotencyKey = "checkout-42"
	_, err = svc.PlaceOrder(context.Background(), altered)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestPlaceOrder_StampsOrderMetadata(t *testing.T) {
	productID := uuid.New()
	catalog := newFakeCatalog(&ports.ProductView{
		ID: productID, Name: "Widget",
		Price: decimal.RequireFromString("10.00"), StockQuantity: 5,
	})
	repo := newFakeOrderRepo()
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	assembler := NewAssembler().WithClock(func() time.Time { return fixed })
	svc := newTestService(catalog, repo,
		&fakeCommitter{catalog: catalog, repo: repo},
		WithAssembler(assembler))

	result, err := svc.PlaceOrder(context.Background(),
		cartInput(types.RawCartLine{ProductID: productID.String(), Quantity: "1"}))
	require.NoError(t, err)
	require.True(t, result.Placed())
	require.Equal(t, fixed, result.Order.OrderDate)
	require.Regexp(t, `^ORD-2506010930-[0-9A-F]{4}$`, result.Order.OrderNumber)
}
