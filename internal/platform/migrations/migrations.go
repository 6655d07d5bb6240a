// Package migrations applies the relational schema for every bounded context.
package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&companyRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&idempotencyRecord{},
		&messageRecord{},
	)
}

// Company schema mirrors the companies Postgres adapter.
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

// Product schema mirrors the catalog Postgres adapter. The order committer
// issues conditional updates against stock_quantity.
type productRecord struct {
	ID            uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	Name          string          `gorm:"column:name;size:100"`
	Description   string          `gorm:"column:description;size:300"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	StockQuantity int             `gorm:"column:stock_quantity"`
	CompanyID     uuid.UUID       `gorm:"column:company_id;type:uuid;index"`
	Tags          pq.StringArray  `gorm:"column:tags;type:text[]"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID          uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber string          `gorm:"column:order_number;size:32;uniqueIndex"`
	OrderDate   time.Time       `gorm:"column:order_date;index"`
	FirstName   string          `gorm:"column:first_name;size:100"`
	LastName    string          `gorm:"column:last_name;size:100"`
	Email       string          `gorm:"column:email;size:254"`
	Province    string          `gorm:"column:province;size:100"`
	City        string          `gorm:"column:city;size:100"`
	Street      string          `gorm:"column:street;size:200"`
	PhoneNumber string          `gorm:"column:phone_number;size:32"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)"`
	Status      string          `gorm:"column:status;size:16"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;index"`
	Quantity  int             `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:128"`
	RequestHash string    `gorm:"column:request_hash;size:64"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

// Message schema mirrors the messages Postgres adapter.
type messageRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Content   string    `gorm:"column:content;size:500"`
	Author    string    `gorm:"column:author;size:100"`
	SentAt    time.Time `gorm:"column:sent_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (messageRecord) TableName() string { return "messages" }
