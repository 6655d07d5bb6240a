package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/catalog/domain"
	"github.com/bizdesk/go-business-records/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(uuid.New(), input.Name, input.Price, input.StockQuantity, input.CompanyID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.Describe(input.Description); err != nil {
		return nil, mapError(err)
	}
	product.ReplaceTags(input.Tags)
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update overrides an existing product with new state. The stock field set here
// is an absolute catalog correction; order placement decrements it separately.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.Rename(input.Name); err != nil {
		return nil, mapError(err)
	}
	if err := product.Describe(input.Description); err != nil {
		return nil, mapError(err)
	}
	if err := product.SetPrice(input.Price); err != nil {
		return nil, mapError(err)
	}
	if err := product.SetStock(input.StockQuantity); err != nil {
		return nil, mapError(err)
	}
	if err := product.AssignCompany(input.CompanyID); err != nil {
		return nil, mapError(err)
	}
	product.ReplaceTags(input.Tags)
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single product.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// List returns all products, used to build the order selection form.
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
