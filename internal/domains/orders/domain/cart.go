package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one well-formed (product, quantity) pair from a submitted cart.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// LineSnapshot freezes a product's identity and price at validation time.
// Assembly and commit work exclusively from snapshots so a catalog edit
// between validation and commit cannot change what the customer pays.
type LineSnapshot struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal computes quantity times unit price with exact decimal arithmetic.
func (s LineSnapshot) LineTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// RejectionCode classifies why a cart line, or the cart as a whole, was
// turned down.
type RejectionCode string

const (
	RejectEmptyCart         RejectionCode = "empty-cart"
	RejectProductNotFound   RejectionCode = "product-not-found"
	RejectInvalidQuantity   RejectionCode = "invalid-quantity"
	RejectInsufficientStock RejectionCode = "insufficient-stock"
	RejectNotPersisted      RejectionCode = "order-not-persisted"
)

// Rejection is one reason a submission failed. Validation collects every
// rejection before returning so the caller can show the complete list at once.
type Rejection struct {
	Code        RejectionCode
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

// Message renders the rejection for display.
func (r Rejection) Message() string {
	switch r.Code {
	case RejectEmptyCart:
		return "You must select at least one product."
	case RejectProductNotFound:
		return fmt.Sprintf("Product with ID %s not found.", r.ProductID)
	case RejectInvalidQuantity:
		return fmt.Sprintf("Quantity for %s must be greater than 0.", r.ProductName)
	case RejectInsufficientStock:
		return fmt.Sprintf("Not enough stock for %s. Available: %d, Requested: %d", r.ProductName, r.Available, r.Requested)
	case RejectNotPersisted:
		return "An error occurred while creating the order. Please try again."
	default:
		return string(r.Code)
	}
}
