package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
)

// CompanyInput carries the mutable company fields plus the acting user for audit stamps.
type CompanyInput struct {
	Name            string
	YearsInBusiness int
	Website         string
	Province        string
	Actor           string
}

// Service exposes company use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CompanyInput) (*domain.Company, error)
	Update(ctx context.Context, id uuid.UUID, input CompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
}
