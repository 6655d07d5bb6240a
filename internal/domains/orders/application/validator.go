package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

// CartValidator checks a submitted cart against the live catalog. It never
// stops at the first problem: every line is examined and every rejection is
// collected so the caller sees the full list in one response.
type CartValidator struct {
	catalog ports.CatalogReader
}

// NewCartValidator creates a validator backed by the given catalog reader.
func NewCartValidator(catalog ports.CatalogReader) *CartValidator {
	return &CartValidator{catalog: catalog}
}

// ParseCartLines converts raw string pairs into cart lines. Pairs whose
// product id is not a UUID or whose quantity is not an integer are dropped
// silently; they carry no information worth reporting.
func ParseCartLines(raw []types.RawCartLine) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(raw))
	for _, pair := range raw {
		id, err := uuid.Parse(strings.TrimSpace(pair.ProductID))
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(pair.Quantity))
		if err != nil {
			continue
		}
		lines = append(lines, domain.CartLine{ProductID: id, Quantity: quantity})
	}
	return lines
}

// Validate resolves every cart line against the catalog. It returns price
// snapshots for the lines that passed, and the complete set of rejections
// for the ones that did not. A non-nil error means the catalog itself could
// not be consulted and nothing can be concluded about the cart.
func (v *CartValidator) Validate(ctx context.Context, lines []domain.CartLine) ([]domain.LineSnapshot, []domain.Rejection, error) {
	if len(lines) == 0 {
		return nil, []domain.Rejection{{Code: domain.RejectEmptyCart}}, nil
	}

	snapshots := make([]domain.LineSnapshot, 0, len(lines))
	var rejections []domain.Rejection
	for _, line := range lines {
		product, err := v.catalog.FindProduct(ctx, line.ProductID)
		if errors.Is(err, ports.ErrProductNotFound) {
			rejections = append(rejections, domain.Rejection{
				Code:      domain.RejectProductNotFound,
				ProductID: line.ProductID,
			})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("look up product %s: %w", line.ProductID, err)
		}
		if line.Quantity <= 0 {
			rejections = append(rejections, domain.Rejection{
				Code:        domain.RejectInvalidQuantity,
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   line.Quantity,
			})
			continue
		}
		if product.StockQuantity < line.Quantity {
			rejections = append(rejections, domain.Rejection{
				Code:        domain.RejectInsufficientStock,
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.StockQuantity,
				Requested:   line.Quantity,
			})
			continue
		}
		snapshots = append(snapshots, domain.LineSnapshot{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		})
	}
	if len(rejections) > 0 {
		return nil, rejections, nil
	}
	return snapshots, nil, nil
}
