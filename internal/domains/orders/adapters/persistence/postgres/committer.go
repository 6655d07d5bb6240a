package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

var _ ports.Committer = (*Committer)(nil)

// Committer persists an order inside a single database transaction. Stock is
// deducted with a conditional UPDATE per product; zero rows affected means a
// concurrent order drained the stock since validation, and the transaction
// rolls back leaving levels and order tables untouched.
type Committer struct {
	db *gorm.DB
}

// NewCommitter wires a PostgreSQL-backed committer.
func NewCommitter(db *gorm.DB) *Committer {
	return &Committer{db: db}
}

type productLevel struct {
	Name          string
	StockQuantity int
}

// Commit runs the deduct-then-insert sequence atomically.
func (c *Committer) Commit(ctx context.Context, order *domain.Order) error {
	if c == nil || c.db == nil {
		return errors.New("postgres order committer not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}

	type deduction struct {
		productID uuid.UUID
		quantity  int
	}
	quantities := make(map[uuid.UUID]int, len(order.Items))
	deductions := make([]deduction, 0, len(order.Items))
	for _, item := range order.Items {
		if _, seen := quantities[item.ProductID]; !seen {
			deductions = append(deductions, deduction{productID: item.ProductID})
		}
		quantities[item.ProductID] += item.Quantity
	}
	for i := range deductions {
		deductions[i].quantity = quantities[deductions[i].productID]
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range deductions {
			res := tx.Exec(
				`UPDATE products SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?`,
				d.quantity, d.productID, d.quantity,
			)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				conflict := &ports.StockConflictError{
					ProductID: d.productID,
					Requested: d.quantity,
				}
				var level productLevel
				if err := tx.Table("products").
					Select("name, stock_quantity").
					Where("id = ?", d.productID).
					Scan(&level).Error; err == nil {
					conflict.ProductName = level.Name
					conflict.Available = level.StockQuantity
				}
				return conflict
			}
		}

		record := toRecord(order)
		return tx.Create(&record).Error
	})
}
