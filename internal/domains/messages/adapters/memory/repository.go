package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
	"github.com/bizdesk/go-business-records/internal/domains/messages/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory message persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, errors.New("message is nil")
	}
	clone := *message
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, &clone)
	saved := clone
	return &saved, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Message, 0, len(r.messages))
	for _, message := range r.messages {
		clone := *message
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SentAt.After(list[j].SentAt) })
	return list, nil
}
