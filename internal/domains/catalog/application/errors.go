package application

import (
	"errors"
	"fmt"

	"github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrBadName) ||
		errors.Is(err, domain.ErrLongDesc) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrMissingCompany) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
