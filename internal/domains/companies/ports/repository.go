package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
)

var ErrNotFound = errors.New("company not found")

// Repository persists companies. Reads exclude soft-deleted records.
type Repository interface {
	Save(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	// SoftDelete marks the company deleted in place.
	SoftDelete(ctx context.Context, company *domain.Company) error
}
