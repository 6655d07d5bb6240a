package application

import (
	"errors"
	"fmt"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
)

// ErrInvalidInput wraps domain invariant violations for transport mapping.
var ErrInvalidInput = errors.New("invalid input")

func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
