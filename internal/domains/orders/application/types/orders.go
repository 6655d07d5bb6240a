// Package types defines transport-agnostic inputs and outputs for the orders
// application layer.
package types

import (
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

// CustomerInput carries the customer contact fields exactly as submitted.
type CustomerInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Province    string `json:"province"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PhoneNumber string `json:"phoneNumber"`
}

// RawCartLine is an unparsed (product id, quantity) pair. Both values arrive
// as strings; lines that fail to parse are dropped during validation rather
// than failing the whole submission.
type RawCartLine struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

// PlaceOrderInput is a full order submission. IdempotencyKey is optional;
// when present, resubmissions with the same key and payload replay the
// original outcome instead of placing a second order.
type PlaceOrderInput struct {
	Customer       CustomerInput `json:"customer"`
	Lines          []RawCartLine `json:"lines"`
	IdempotencyKey string        `json:"-"`
}

// OrderDraft echoes the rejected submission back to the caller so a form can
// be re-rendered without losing what the customer typed.
type OrderDraft struct {
	Customer CustomerInput `json:"customer"`
	Lines    []RawCartLine `json:"lines"`
}

// PlaceOrderResult is the outcome of a placement attempt. Exactly one of
// Order or Rejections is populated.
type PlaceOrderResult struct {
	Order      *domain.Order      `json:"order,omitempty"`
	Rejections []domain.Rejection `json:"rejections,omitempty"`
	Draft      *OrderDraft        `json:"draft,omitempty"`

	// CommitCause holds the underlying storage error when the order could not
	// be persisted. It is for logging only and never crosses the wire.
	CommitCause error `json:"-"`
}

// Placed reports whether the attempt produced a persisted order.
func (r *PlaceOrderResult) Placed() bool {
	return r != nil && r.Order != nil
}

// Reasons renders every rejection message in submission order.
func (r *PlaceOrderResult) Reasons() []string {
	if r == nil || len(r.Rejections) == 0 {
		return nil
	}
	reasons := make([]string, 0, len(r.Rejections))
	for _, rejection := range r.Rejections {
		reasons = append(reasons, rejection.Message())
	}
	return reasons
}
