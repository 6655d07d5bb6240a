package memory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogmemory "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/memory"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

var _ ports.Committer = (*Committer)(nil)

// Committer applies an order against the in-memory catalog and order store.
// The catalog repository's all-or-nothing decrement is the atomic primitive:
// stock is re-checked under its write lock, so a shortage leaves both stores
// untouched.
type Committer struct {
	catalog *catalogmemory.Repository
	orders  *Repository
}

// NewCommitter wires a committer over the shared in-memory stores.
func NewCommitter(catalog *catalogmemory.Repository, orders *Repository) *Committer {
	return &Committer{catalog: catalog, orders: orders}
}

// Commit deducts stock for every item and inserts the order. On shortage it
// returns a StockConflictError and persists nothing.
func (c *Committer) Commit(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	quantities := make(map[uuid.UUID]int, len(order.Items))
	for _, item := range order.Items {
		quantities[item.ProductID] += item.Quantity
	}

	shortage, err := c.catalog.DecrementStock(ctx, quantities)
	if err != nil {
		return err
	}
	if shortage != nil {
		conflict := &ports.StockConflictError{
			ProductID: shortage.ProductID,
			Available: shortage.Available,
			Requested: shortage.Requested,
		}
		if product, err := c.catalog.GetByID(ctx, shortage.ProductID); err == nil {
			conflict.ProductName = product.Name
		}
		return conflict
	}

	return c.orders.insert(order)
}
