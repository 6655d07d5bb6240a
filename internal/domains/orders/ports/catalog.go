package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound indicates the referenced product does not exist in the
// catalog.
var ErrProductNotFound = errors.New("product not found")

// ProductView is the slice of catalog state order placement needs: identity,
// the current price to snapshot, and the stock level to check against.
type ProductView struct {
	ID            uuid.UUID
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// CatalogReader looks up products during cart validation.
type CatalogReader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
}
