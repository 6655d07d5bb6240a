package ports

import (
	"context"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
)

// Orchestrator routes a placement through a workflow engine when one is
// configured, or invokes the service inline otherwise. Either way the
// placement itself runs exactly once; workflow retries are disabled because
// a failed attempt must surface to the caller rather than repeat.
type Orchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlaceOrderResult, error)
}
