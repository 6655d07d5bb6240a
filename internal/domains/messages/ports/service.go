package ports

import (
	"context"

	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
)

// Service exposes message-board use cases to adapters.
type Service interface {
	Post(ctx context.Context, content, author string) (*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
}
