package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("company name is required")
	ErrInvalidYears = errors.New("years in business must be between 0 and 500")
	ErrEmptyWebsite = errors.New("company website is required")
	ErrBadWebsite   = errors.New("company website must be a valid URL")
)

// Audit records who created and last changed a company record.
type Audit struct {
	CreatedAt  time.Time
	CreatedBy  string
	ModifiedAt *time.Time
	ModifiedBy string
}

// Company represents a supplier whose products appear in the catalog.
// Companies are soft deleted: a deleted company stays in storage but is
// filtered out of reads.
type Company struct {
	ID              uuid.UUID
	Name            string
	YearsInBusiness int
	Website         string
	Province        string
	Deleted         bool
	DeletedAt       *time.Time
	Audit           Audit
}

// NewCompany validates the invariants and builds a new Company aggregate.
func NewCompany(id uuid.UUID, name string, years int, website, province string) (*Company, error) {
	c := &Company{ID: id, Province: strings.TrimSpace(province)}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.SetYearsInBusiness(years); err != nil {
		return nil, err
	}
	if err := c.SetWebsite(website); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename mutates the company name ensuring the invariant.
func (c *Company) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// SetYearsInBusiness bounds the value to a plausible range.
func (c *Company) SetYearsInBusiness(years int) error {
	if years < 0 || years > 500 {
		return ErrInvalidYears
	}
	c.YearsInBusiness = years
	return nil
}

// SetWebsite requires an absolute, parseable URL.
func (c *Company) SetWebsite(website string) error {
	website = strings.TrimSpace(website)
	if website == "" {
		return ErrEmptyWebsite
	}
	parsed, err := url.Parse(website)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ErrBadWebsite
	}
	c.Website = website
	return nil
}

// MarkCreated stamps the audit trail for a freshly stored company.
func (c *Company) MarkCreated(actor string, at time.Time) {
	c.Audit.CreatedAt = at
	c.Audit.CreatedBy = actorOrSystem(actor)
}

// MarkModified stamps the audit trail for an update.
func (c *Company) MarkModified(actor string, at time.Time) {
	t := at
	c.Audit.ModifiedAt = &t
	c.Audit.ModifiedBy = actorOrSystem(actor)
}

// SoftDelete hides the company from reads without destroying the record.
func (c *Company) SoftDelete(at time.Time) {
	t := at
	c.Deleted = true
	c.DeletedAt = &t
}

func actorOrSystem(actor string) string {
	if strings.TrimSpace(actor) == "" {
		return "system"
	}
	return actor
}
