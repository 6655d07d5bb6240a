package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
	"github.com/bizdesk/go-business-records/internal/domains/catalog/ports"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uuid.UUID]*domain.Product{}}
}

func (f *fakeProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	clone := *product
	f.products[product.ID] = &clone
	return &clone, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	var list []*domain.Product
	for _, p := range f.products {
		clone := *p
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func validInput() ports.ProductInput {
	return ports.ProductInput{
		Name:          "Steel Widget",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 10,
		CompanyID:     uuid.New(),
	}
}

func TestCreate_ValidatesAndPersists(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)

	product, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, product.ID)
	require.True(t, product.Price.Equal(decimal.RequireFromString("19.99")))

	fetched, err := svc.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, product.Name, fetched.Name)
}

func TestCreate_RejectsOutOfRangePrice(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	for _, price := range []string{"0", "0.001", "100000.01", "-5"} {
		input := validInput()
		input.Price = decimal.RequireFromString(price)
		_, err := svc.Create(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrInvalidPrice, "price %s", price)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreate_RejectsInvalidName(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	input := validInput()
	input.Name = "widget!@#"
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrBadName)
}

func TestCreate_RejectsNegativeStock(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	input := validInput()
	input.StockQuantity = -1
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestCreate_RequiresCompany(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	input := validInput()
	input.CompanyID = uuid.Nil
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrMissingCompany)
}

func TestUpdate_ReplacesFields(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)

	product, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Name = "Brass Widget"
	input.Tags = []string{"metal", "fasteners"}
	updated, err := svc.Update(context.Background(), product.ID, input)
	require.NoError(t, err)
	require.Equal(t, "Brass Widget", updated.Name)
	require.Equal(t, []string{"metal", "fasteners"}, updated.Tags)
}

func TestUpdate_UnknownProduct(t *testing.T) {
	svc := NewService(newFakeProductRepo())

	_, err := svc.Update(context.Background(), uuid.New(), validInput())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
