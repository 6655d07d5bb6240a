package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
	"github.com/bizdesk/go-business-records/internal/domains/messages/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid message input")

// Service orchestrates the message-board use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the messages service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Post validates and stores a new message.
func (s *Service) Post(ctx context.Context, content, author string) (*domain.Message, error) {
	message, err := domain.NewMessage(uuid.New(), content, author, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, message)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// List returns all messages newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Message, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyContent) || errors.Is(err, domain.ErrContentTooLong) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
