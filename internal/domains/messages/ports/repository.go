package ports

import (
	"context"

	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
)

// Repository persists board messages.
type Repository interface {
	Save(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// List returns messages newest first.
	List(ctx context.Context) ([]*domain.Message, error)
}
