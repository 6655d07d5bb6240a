package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Repository reads persisted orders. Writes go through the Committer so that
// stock deduction and order persistence stay in one atomic unit.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
