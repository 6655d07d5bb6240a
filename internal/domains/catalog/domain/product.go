package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName      = errors.New("product name is required")
	ErrNameTooLong    = errors.New("product name cannot exceed 100 characters")
	ErrBadName        = errors.New("product name contains invalid characters")
	ErrLongDesc       = errors.New("product description cannot exceed 300 characters")
	ErrInvalidPrice   = errors.New("price must be between 0.01 and 100000")
	ErrNegativeStock  = errors.New("stock quantity cannot be negative")
	ErrMissingCompany = errors.New("owning company is required")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9\s\-\.]+$`)

// Price bounds. Prices use exact decimal arithmetic; floats never touch money.
var (
	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.NewFromInt(100000)
)

// Product is the catalog aggregate. StockQuantity is decremented only by a
// committed order; catalog edits never touch historical order pricing because
// orders snapshot the unit price at validation time.
type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CompanyID     uuid.UUID
	Tags          []string
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(id uuid.UUID, name string, price decimal.Decimal, stock int, companyID uuid.UUID) (*Product, error) {
	p := &Product{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	if err := p.AssignCompany(companyID); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariants.
func (p *Product) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if len(trimmed) > 100 {
		return ErrNameTooLong
	}
	if !namePattern.MatchString(trimmed) {
		return ErrBadName
	}
	p.Name = trimmed
	return nil
}

// Describe replaces the optional description.
func (p *Product) Describe(description string) error {
	if len(description) > 300 {
		return ErrLongDesc
	}
	p.Description = description
	return nil
}

// SetPrice bounds the price to (0.01, 100000].
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.LessThan(minPrice) || price.GreaterThan(maxPrice) {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// SetStock replaces the absolute stock level; it never goes negative.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.StockQuantity = stock
	return nil
}

// AssignCompany links the product to its owning company.
func (p *Product) AssignCompany(companyID uuid.UUID) error {
	if companyID == uuid.Nil {
		return ErrMissingCompany
	}
	p.CompanyID = companyID
	return nil
}

// ReplaceTags swaps the current tag set.
func (p *Product) ReplaceTags(tags []string) {
	p.Tags = append([]string{}, tags...)
}
