// Package catalog bridges the orders context to the product catalog without
// coupling order logic to catalog domain types.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogports "github.com/bizdesk/go-business-records/internal/domains/catalog/ports"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

var _ ports.CatalogReader = (*Reader)(nil)

// Reader adapts the catalog repository to the narrow view order placement
// needs.
type Reader struct {
	products catalogports.Repository
}

func NewReader(products catalogports.Repository) *Reader {
	return &Reader{products: products}
}

func (r *Reader) FindProduct(ctx context.Context, id uuid.UUID) (*ports.ProductView, error) {
	product, err := r.products.GetByID(ctx, id)
	if errors.Is(err, catalogports.ErrNotFound) {
		return nil, ports.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ports.ProductView{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
	}, nil
}
