package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

// Assembler turns validated line snapshots into a pending order. Totals are
// computed from the snapshots alone, never from the live catalog.
type Assembler struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// NewAssembler creates an assembler using the wall clock and random UUIDs.
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now, newID: uuid.New}
}

// WithClock overrides the time source. Intended for tests.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	if now != nil {
		a.now = now
	}
	return a
}

// WithIDSource overrides the UUID source. Intended for tests.
func (a *Assembler) WithIDSource(newID func() uuid.UUID) *Assembler {
	if newID != nil {
		a.newID = newID
	}
	return a
}

// Assemble builds a pending order from the customer info and snapshots.
func (a *Assembler) Assemble(customer domain.CustomerInfo, snapshots []domain.LineSnapshot) *domain.Order {
	orderID := a.newID()
	now := a.now().UTC()

	items := make([]domain.OrderItem, 0, len(snapshots))
	total := decimal.Zero
	for _, snapshot := range snapshots {
		lineTotal := snapshot.LineTotal()
		items = append(items, domain.OrderItem{
			ID:        a.newID(),
			OrderID:   orderID,
			ProductID: snapshot.ProductID,
			Quantity:  snapshot.Quantity,
			UnitPrice: snapshot.UnitPrice,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return &domain.Order{
		ID:          orderID,
		OrderNumber: a.orderNumber(now),
		OrderDate:   now,
		Customer:    customer,
		TotalPrice:  total,
		Status:      domain.StatusPending,
		Items:       items,
	}
}

// orderNumber produces a human-readable reference such as
// ORD-2506010930-3FA8: a timestamp to the minute plus a short random suffix.
func (a *Assembler) orderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(a.newID().String(), "-", "")[:4])
	return fmt.Sprintf("ORD-%s-%s", now.Format("0601021504"), suffix)
}
