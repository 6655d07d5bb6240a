package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bizdesk/go-business-records/internal/domains/messages/domain"
)

type fakeMessageRepo struct {
	messages []*domain.Message
}

func (f *fakeMessageRepo) Save(_ context.Context, message *domain.Message) (*domain.Message, error) {
	clone := *message
	f.messages = append(f.messages, &clone)
	return &clone, nil
}

func (f *fakeMessageRepo) List(_ context.Context) ([]*domain.Message, error) {
	return f.messages, nil
}

func TestPost_TrimsContent(t *testing.T) {
	svc := NewService(&fakeMessageRepo{})

	message, err := svc.Post(context.Background(), "  hello team  ", "alice")
	require.NoError(t, err)
	require.Equal(t, "hello team", message.Content)
	require.Equal(t, "alice", message.Author)
}

func TestPost_RejectsEmpty(t *testing.T) {
	svc := NewService(&fakeMessageRepo{})

	_, err := svc.Post(context.Background(), "   ", "alice")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestPost_RejectsTooLong(t *testing.T) {
	svc := NewService(&fakeMessageRepo{})

	_, err := svc.Post(context.Background(), strings.Repeat("x", 501), "alice")
	require.ErrorIs(t, err, domain.ErrContentTooLong)
}

func TestPost_StampsSentAt(t *testing.T) {
	svc := NewService(&fakeMessageRepo{})
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return fixed })

	message, err := svc.Post(context.Background(), "standup at ten", "")
	require.NoError(t, err)
	require.Equal(t, fixed, message.SentAt)
	require.Equal(t, "system", message.Author)
}
