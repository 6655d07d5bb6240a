package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

// ErrStockConflict marks a commit-time stock re-check failure: stock that
// looked sufficient at validation time was consumed by a concurrent order.
var ErrStockConflict = errors.New("insufficient stock at commit time")

// StockConflictError reports which product fell short during commit. It
// unwraps to ErrStockConflict.
type StockConflictError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *StockConflictError) Is(target error) bool { return target == ErrStockConflict }

// Committer persists an order and deducts stock for every line as a single
// atomic unit. Stock levels are re-checked inside the commit; on any shortage
// or storage failure, nothing is persisted and no stock is deducted.
type Committer interface {
	Commit(ctx context.Context, order *domain.Order) error
}
