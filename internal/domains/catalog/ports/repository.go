package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products. Stock decrements for orders go through
// the order committer, not this interface.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
