package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
	"github.com/bizdesk/go-business-records/internal/domains/orders/domain"
	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

var _ ports.Service = (*Service)(nil)

// Service coordinates order placement: parse, validate, assemble, commit.
// Validation and commit are deliberately separate phases; the commit re-checks
// stock so a concurrent order that drained inventory between the two phases
// turns into a rejection, never an oversell.
type Service struct {
	orders      ports.Repository
	committer   ports.Committer
	validator   *CartValidator
	assembler   *Assembler
	idempotency ports.IdempotencyStore
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithIdempotencyStore enables replay of completed placements by client key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithAssembler overrides the order assembler. Intended for tests that need
// a fixed clock or deterministic IDs.
func WithAssembler(assembler *Assembler) Option {
	return func(s *Service) {
		if assembler != nil {
			s.assembler = assembler
		}
	}
}

// NewService wires the placement pipeline.
func NewService(catalog ports.CatalogReader, orders ports.Repository, committer ports.Committer, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		committer: committer,
		validator: NewCartValidator(catalog),
		assembler: NewAssembler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder runs a full placement attempt. The returned result either holds
// the persisted order, or the complete rejection list plus a draft echoing the
// submission. A non-nil error is reserved for infrastructure failures where
// no verdict about the cart could be reached, and for idempotency conflicts.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlaceOrderResult, error) {
	if replayed, err := s.replay(ctx, input); replayed != nil || err != nil {
		return replayed, err
	}

	draft := &types.OrderDraft{Customer: input.Customer, Lines: input.Lines}
	lines := ParseCartLines(input.Lines)

	snapshots, rejections, err := s.validator.Validate(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(rejections) > 0 {
		return &types.PlaceOrderResult{Rejections: rejections, Draft: draft}, nil
	}

	order := s.assembler.Assemble(toCustomer(input.Customer), snapshots)
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}

	if err := s.committer.Commit(ctx, order); err != nil {
		return s.commitFailure(err, draft), nil
	}

	s.remember(ctx, input, order.ID)
	return &types.PlaceOrderResult{Order: order}, nil
}

// commitFailure converts a failed commit into rejections. A stock conflict
// becomes an insufficient-stock rejection with the fresh levels; anything
// else becomes a generic not-persisted rejection with the cause preserved
// for logging.
func (s *Service) commitFailure(err error, draft *types.OrderDraft) *types.PlaceOrderResult {
	var conflict *ports.StockConflictError
	if errors.As(err, &conflict) {
		return &types.PlaceOrderResult{
			Rejections: []domain.Rejection{{
				Code:        domain.RejectInsufficientStock,
				ProductID:   conflict.ProductID,
				ProductName: conflict.ProductName,
				Available:   conflict.Available,
				Requested:   conflict.Requested,
			}},
			Draft: draft,
		}
	}
	return &types.PlaceOrderResult{
		Rejections:  []domain.Rejection{{Code: domain.RejectNotPersisted}},
		Draft:       draft,
		CommitCause: err,
	}
}

// replay returns the original outcome when the idempotency key has already
// completed. A key reused with a different payload is a hard error.
func (s *Service) replay(ctx context.Context, input types.PlaceOrderInput) (*types.PlaceOrderResult, error) {
	if s.idempotency == nil || input.IdempotencyKey == "" {
		return nil, nil
	}
	record, err := s.idempotency.Get(ctx, input.IdempotencyKey)
	if errors.Is(err, ports.ErrIdempotencyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}
	if record.RequestHash != fingerprint(input) {
		return nil, ports.ErrIdempotencyConflict
	}
	order, err := s.orders.GetByID(ctx, record.OrderID)
	if err != nil {
		return nil, fmt.Errorf("replay order %s: %w", record.OrderID, err)
	}
	return &types.PlaceOrderResult{Order: order}, nil
}

// remember stores the key-to-order mapping after a successful commit. The
// order is already durable at this point, so a failure here only costs the
// replay shortcut and is not surfaced.
func (s *Service) remember(ctx context.Context, input types.PlaceOrderInput, orderID uuid.UUID) {
	if s.idempotency == nil || input.IdempotencyKey == "" {
		return
	}
	_ = s.idempotency.Put(ctx, ports.IdempotencyRecord{
		Key:         input.IdempotencyKey,
		RequestHash: fingerprint(input),
		OrderID:     orderID,
	})
}

// GetByID returns a single order with its items.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// GetByNumber returns a single order by its human-readable reference.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.orders.GetByNumber(ctx, orderNumber)
}

// List returns all orders newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

func toCustomer(in types.CustomerInput) domain.CustomerInfo {
	return domain.CustomerInfo{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Province:    in.Province,
		City:        in.City,
		Street:      in.Street,
		PhoneNumber: in.PhoneNumber,
	}
}
