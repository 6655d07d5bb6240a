package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/bizdesk/go-business-records/internal/durable/temporal/activities/orders"
	orderstypes "github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
)

// RunOrderPlacementSequence executes the placement activity. MaximumAttempts
// is pinned to 1: the activity commits stock and the order atomically, and a
// failed attempt must surface to the caller instead of silently repeating.
func RunOrderPlacementSequence(ctx workflow.Context, input orderstypes.PlaceOrderInput) (*orderstypes.PlaceOrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "cartLines", len(input.Lines))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result orderstypes.PlaceOrderResult
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("order placement sequence failed", "error", err)
		return nil, err
	}
	if result.Placed() {
		logger.Info("order placement sequence completed", "orderNumber", result.Order.OrderNumber)
	} else {
		logger.Info("order placement sequence completed with rejections", "reasons", result.Reasons())
	}
	return &result, nil
}
