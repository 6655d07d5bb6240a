package application

import (
	"errors"
	"fmt"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid company input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidYears) ||
		errors.Is(err, domain.ErrEmptyWebsite) ||
		errors.Is(err, domain.ErrBadWebsite) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
