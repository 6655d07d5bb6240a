package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

// Service is the orders application boundary consumed by transport and
// workflow adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlaceOrderResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
