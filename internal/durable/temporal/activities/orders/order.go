package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderstypes "github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
	ordersports "github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

// PlaceOrderActivityName runs the full placement pipeline as one activity.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder validates, assembles, and commits an order. The activity runs
// with retries disabled: a rejection or commit failure is a final verdict to
// report, not a transient fault to retry into a duplicate order.
func (a *Activities) PlaceOrder(ctx context.Context, input orderstypes.PlaceOrderInput) (*orderstypes.PlaceOrderResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized")
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "cartLines", len(input.Lines))
	result, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "error", err)
		return nil, err
	}
	if result.Placed() {
		logger.Info("PlaceOrder activity completed", "orderNumber", result.Order.OrderNumber)
	} else {
		logger.Info("PlaceOrder activity completed with rejections", "reasons", result.Reasons())
	}
	return result, nil
}
