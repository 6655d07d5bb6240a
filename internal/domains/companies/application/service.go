package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
	"github.com/bizdesk/go-business-records/internal/domains/companies/ports"
)

// Service orchestrates the companies bounded context use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the companies service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create validates and stores a new company, stamping the audit trail.
func (s *Service) Create(ctx context.Context, input ports.CompanyInput) (*domain.Company, error) {
	company, err := domain.NewCompany(uuid.New(), input.Name, input.YearsInBusiness, input.Website, input.Province)
	if err != nil {
		return nil, mapError(err)
	}
	company.MarkCreated(input.Actor, s.now())
	saved, err := s.repo.Save(ctx, company)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update overrides the mutable fields of an existing company.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input ports.CompanyInput) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := company.Rename(input.Name); err != nil {
		return nil, mapError(err)
	}
	if err := company.SetYearsInBusiness(input.YearsInBusiness); err != nil {
		return nil, mapError(err)
	}
	if err := company.SetWebsite(input.Website); err != nil {
		return nil, mapError(err)
	}
	company.Province = input.Province
	company.MarkModified(input.Actor, s.now())
	saved, err := s.repo.Save(ctx, company)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single company.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return company, nil
}

// List returns all non-deleted companies.
func (s *Service) List(ctx context.Context) ([]*domain.Company, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// Delete soft-deletes a company so historical orders keep a valid owner reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	company.SoftDelete(s.now())
	company.MarkModified(actor, s.now())
	if err := s.repo.SoftDelete(ctx, company); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
