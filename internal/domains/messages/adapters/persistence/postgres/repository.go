package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
	"github.com/bizdesk/go-business-records/internal/domains/messages/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists messages in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type messageRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Content   string    `gorm:"column:content;size:500"`
	Author    string    `gorm:"column:author;size:100"`
	SentAt    time.Time `gorm:"column:sent_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (messageRecord) TableName() string { return "messages" }

// Save inserts a message. Messages are append-only.
func (r *Repository) Save(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if message == nil {
		return nil, errors.New("message is nil")
	}
	record := messageRecord{
		ID:      message.ID,
		Content: message.Content,
		Author:  message.Author,
		SentAt:  message.SentAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all messages newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Message, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []messageRecord
	if err := r.db.WithContext(ctx).Order("sent_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	messages := make([]*domain.Message, 0, len(records))
	for i := range records {
		messages = append(messages, records[i].toDomain())
	}
	return messages, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres message repository not configured")
	}
	return nil
}

func (r messageRecord) toDomain() *domain.Message {
	return &domain.Message{
		ID:      r.ID,
		Content: r.Content,
		Author:  r.Author,
		SentAt:  r.SentAt,
	}
}
