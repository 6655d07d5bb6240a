package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyContent   = errors.New("message cannot be empty")
	ErrContentTooLong = errors.New("message cannot exceed 500 characters")
)

// Message is a short note posted to the shared board.
type Message struct {
	ID      uuid.UUID
	Content string
	Author  string
	SentAt  time.Time
}

// NewMessage trims and validates the content before constructing the message.
func NewMessage(id uuid.UUID, content, author string, sentAt time.Time) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > 500 {
		return nil, ErrContentTooLong
	}
	if strings.TrimSpace(author) == "" {
		author = "system"
	}
	return &Message{ID: id, Content: content, Author: author, SentAt: sentAt}, nil
}
