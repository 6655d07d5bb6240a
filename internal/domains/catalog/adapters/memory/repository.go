package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
	"github.com/bizdesk/go-business-records/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter. The order-domain
// memory committer shares this instance so stock decrements and order inserts
// happen under one lock.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.products[clone.ID] = clone
	saved := cloneProduct(clone)
	return saved, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, cloneProduct(product))
	}
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// StockShortage reports the first product whose re-checked level could not
// cover the requested decrement.
type StockShortage struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

// DecrementStock applies all decrements or none, re-checking each level under
// the write lock. The order-domain memory committer uses it as its atomic
// multi-write primitive; a non-nil shortage means nothing was applied.
func (r *Repository) DecrementStock(_ context.Context, quantities map[uuid.UUID]int) (*StockShortage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, qty := range quantities {
		product, ok := r.products[id]
		if !ok {
			return nil, fmt.Errorf("decrement stock: %w", ports.ErrNotFound)
		}
		if product.StockQuantity < qty {
			return &StockShortage{ProductID: id, Available: product.StockQuantity, Requested: qty}, nil
		}
	}
	for id, qty := range quantities {
		r.products[id].StockQuantity -= qty
	}
	return nil, nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.Tags = append([]string{}, p.Tags...)
	return &clone
}
