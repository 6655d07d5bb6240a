package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates order progression. The placement workflow only ever
// creates orders in StatusPending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("order item quantity must be greater than zero")
	ErrTotalMismatch   = errors.New("order total must equal the sum of line totals")
	ErrInvalidStatus   = errors.New("order status is invalid")
)

// CustomerInfo carries the contact fields captured with an order.
type CustomerInfo struct {
	FirstName   string
	LastName    string
	Email       string
	Province    string
	City        string
	Street      string
	PhoneNumber string
}

// OrderItem is one line of an order. UnitPrice is a snapshot of the product
// price at validation time and is never re-read from the live catalog, so
// later price edits do not rewrite historical orders.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Order models a placed purchase. It is persisted exactly once, together with
// all of its items, or not at all.
type Order struct {
	ID          uuid.UUID
	OrderNumber string
	OrderDate   time.Time
	Customer    CustomerInfo
	TotalPrice  decimal.Decimal
	Status      Status
	Items       []OrderItem
}

// Validate enforces invariants on the aggregate: positive quantities, exact
// line totals, and an order total that equals the item sum with no drift.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	sum := decimal.Zero
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !item.LineTotal.Equal(expected) {
			return ErrTotalMismatch
		}
		sum = sum.Add(item.LineTotal)
	}
	if !o.TotalPrice.Equal(sum) {
		return ErrTotalMismatch
	}
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
