package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bizdesk/go-business-records/internal/domains/companies/domain"
	"github.com/bizdesk/go-business-records/internal/domains/companies/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists companies in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// companyRecord maps the company aggregate to a relational table.
type companyRecord struct {
	ID              uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	Name            string     `gorm:"column:name;size:200"`
	YearsInBusiness int        `gorm:"column:years_in_business"`
	Website         string     `gorm:"column:website;size:300"`
	Province        string     `gorm:"column:province;size:100"`
	IsDeleted       bool       `gorm:"column:is_deleted;index"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	CreatedBy       string     `gorm:"column:created_by;size:100"`
	ModifiedAt      *time.Time `gorm:"column:modified_at"`
	ModifiedBy      string     `gorm:"column:modified_by;size:100"`
}

func (companyRecord) TableName() string { return "companies" }

// Save inserts or updates a company.
func (r *Repository) Save(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company is nil")
	}
	record := toRecord(company)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":              record.Name,
				"years_in_business": record.YearsInBusiness,
				"website":           record.Website,
				"province":          record.Province,
				"modified_at":       record.ModifiedAt,
				"modified_by":       record.ModifiedBy,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a non-deleted company by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record companyRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ? AND is_deleted = false", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all non-deleted companies.
func (r *Repository) List(ctx context.Context) ([]*domain.Company, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []companyRecord
	if err := r.db.WithContext(ctx).Where("is_deleted = false").Find(&records).Error; err != nil {
		return nil, err
	}
	companies := make([]*domain.Company, 0, len(records))
	for i := range records {
		companies = append(companies, records[i].toDomain())
	}
	return companies, nil
}

// SoftDelete flags the row deleted; the record itself is retained.
func (r *Repository) SoftDelete(ctx context.Context, company *domain.Company) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if company == nil {
		return errors.New("company is nil")
	}
	result := r.db.WithContext(ctx).Model(&companyRecord{}).
		Where("id = ? AND is_deleted = false", company.ID).
		Updates(map[string]any{
			"is_deleted":  true,
			"deleted_at":  company.DeletedAt,
			"modified_at": company.Audit.ModifiedAt,
			"modified_by": company.Audit.ModifiedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres company repository not configured")
	}
	return nil
}

func toRecord(company *domain.Company) companyRecord {
	return companyRecord{
		ID:              company.ID,
		Name:            company.Name,
		YearsInBusiness: company.YearsInBusiness,
		Website:         company.Website,
		Province:        company.Province,
		IsDeleted:       company.Deleted,
		DeletedAt:       company.DeletedAt,
		CreatedAt:       company.Audit.CreatedAt,
		CreatedBy:       company.Audit.CreatedBy,
		ModifiedAt:      company.Audit.ModifiedAt,
		ModifiedBy:      company.Audit.ModifiedBy,
	}
}

func (r companyRecord) toDomain() *domain.Company {
	return &domain.Company{
		ID:              r.ID,
		Name:            r.Name,
		YearsInBusiness: r.YearsInBusiness,
		Website:         r.Website,
		Province:        r.Province,
		Deleted:         r.IsDeleted,
		DeletedAt:       r.DeletedAt,
		Audit: domain.Audit{
			CreatedAt:  r.CreatedAt,
			CreatedBy:  r.CreatedBy,
			ModifiedAt: r.ModifiedAt,
			ModifiedBy: r.ModifiedBy,
		},
	}
}
