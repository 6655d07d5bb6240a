package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
	"github.com/bizdesk/go-business-records/internal/domains/companies/ports"
)

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uuid.UUID]*domain.Company{}}
}

func (f *fakeCompanyRepo) Save(_ context.Context, company *domain.Company) (*domain.Company, error) {
	clone := *company
	f.companies[company.ID] = &clone
	return &clone, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	if c, ok := f.companies[id]; ok && !c.Deleted {
		clone := *c
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeCompanyRepo) List(_ context.Context) ([]*domain.Company, error) {
	var list []*domain.Company
	for _, c := range f.companies {
		if c.Deleted {
			continue
		}
		clone := *c
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeCompanyRepo) SoftDelete(_ context.Context, company *domain.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return ports.ErrNotFound
	}
	clone := *company
	f.companies[clone.ID] = &clone
	return nil
}

func TestCreate_StampsAudit(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewService(repo)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return fixed })

	company, err := svc.Create(context.Background(), ports.CompanyInput{
		Name:            "Northwind Traders",
		YearsInBusiness: 25,
		Website:         "https://northwind.example.com",
		Actor:           "alice",
	})
	require.NoError(t, err)
	require.Equal(t, fixed, company.Audit.CreatedAt)
	require.Equal(t, "alice", company.Audit.CreatedBy)
	require.NotEqual(t, uuid.Nil, company.ID)
}

func TestCreate_DefaultsActorToSystem(t *testing.T) {
	svc := NewService(newFakeCompanyRepo())

	company, err := svc.Create(context.Background(), ports.CompanyInput{
		Name:    "Contoso",
		Website: "https://contoso.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "system", company.Audit.CreatedBy)
}

func TestCreate_InvalidYears(t *testing.T) {
	svc := NewService(newFakeCompanyRepo())

	_, err := svc.Create(context.Background(), ports.CompanyInput{
		Name:            "Contoso",
		YearsInBusiness: 501,
		Website:         "https://contoso.example.com",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidYears)
}

func TestCreate_BadWebsite(t *testing.T) {
	svc := NewService(newFakeCompanyRepo())

	_, err := svc.Create(context.Background(), ports.CompanyInput{
		Name:    "Contoso",
		Website: "not a url",
	})
	require.ErrorIs(t, err, domain.ErrBadWebsite)
}

func TestDelete_HidesFromReads(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewService(repo)

	company, err := svc.Create(context.Background(), ports.CompanyInput{
		Name:    "Fabrikam",
		Website: "https://fabrikam.example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), company.ID, "bob"))

	_, err = svc.GetByID(context.Background(), company.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
