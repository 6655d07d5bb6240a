package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
	"github.com/bizdesk/go-business-records/internal/domains/companies/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory company persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]*domain.Company
}

func NewRepository() *Repository {
	return &Repository{companies: map[uuid.UUID]*domain.Company{}}
}

func (r *Repository) Save(_ context.Context, company *domain.Company) (*domain.Company, error) {
	if company == nil {
		return nil, errors.New("company is nil")
	}
	clone := *company
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.companies[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.companies[id]
	if !ok || company.Deleted {
		return nil, ports.ErrNotFound
	}
	clone := *company
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Company, 0, len(r.companies))
	for _, company := range r.companies {
		if company.Deleted {
			continue
		}
		clone := *company
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) SoftDelete(_ context.Context, company *domain.Company) error {
	if company == nil {
		return errors.New("company is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return ports.ErrNotFound
	}
	clone := *company
	r.companies[clone.ID] = &clone
	return nil
}
