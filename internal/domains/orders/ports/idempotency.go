package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrIdempotencyConflict indicates a key was reused with a different payload.
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different request")
	// ErrIdempotencyNotFound indicates no record exists for the key.
	ErrIdempotencyNotFound = errors.New("idempotency record not found")
)

// IdempotencyRecord links a client-supplied key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     uuid.UUID
}

// IdempotencyStore remembers completed placements keyed by client token.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}
