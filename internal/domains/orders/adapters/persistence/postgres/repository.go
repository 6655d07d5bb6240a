package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository reads orders from PostgreSQL using GORM. All writes go through
// the Committer in this package.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID          uuid.UUID         `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber string            `gorm:"column:order_number;size:32;uniqueIndex"`
	OrderDate   time.Time         `gorm:"column:order_date;index"`
	FirstName   string            `gorm:"column:first_name;size:100"`
	LastName    string            `gorm:"column:last_name;size:100"`
	Email       string            `gorm:"column:email;size:254"`
	Province    string            `gorm:"column:province;size:100"`
	City        string            `gorm:"column:city;size:100"`
	Street      string            `gorm:"column:street;size:200"`
	PhoneNumber string            `gorm:"column:phone_number;size:32"`
	TotalPrice  decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2)"`
	Status      string            `gorm:"column:status;size:16"`
	Items       []orderItemRecord `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt   time.Time         `gorm:"column:created_at"`
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

// GetByID loads one order with its items.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).Preload("Items").First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByNumber loads one order by its human-readable reference.
func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).Preload("Items").First(&record, "order_number = ?", orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders newest first, items included.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").Order("order_date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemRecord{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return orderRecord{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate,
		FirstName:   order.Customer.FirstName,
		LastName:    order.Customer.LastName,
		Email:       order.Customer.Email,
		Province:    order.Customer.Province,
		City:        order.Customer.City,
		Street:      order.Customer.Street,
		PhoneNumber: order.Customer.PhoneNumber,
		TotalPrice:  order.TotalPrice,
		Status:      string(order.Status),
		Items:       items,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return &domain.Order{
		ID:          r.ID,
		OrderNumber: r.OrderNumber,
		OrderDate:   r.OrderDate,
		Customer: domain.CustomerInfo{
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			Email:       r.Email,
			Province:    r.Province,
			City:        r.City,
			Street:      r.Street,
			PhoneNumber: r.PhoneNumber,
		},
		TotalPrice: r.TotalPrice,
		Status:     domain.Status(r.Status),
		Items:      items,
	}
}
