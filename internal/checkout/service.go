package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/internal/cart"
	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/internal/orders"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccess interface {
	LoadLedger(ctx context.Context, userID uuid.UUID) (*cart.Ledger, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type eventDispatcher interface {
	OrderEvent(ctx context.Context, eventType, aggregateID string, payload any)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Repo   Repository
	Tx     txRunner
	Carts  cartAccess
	Events eventDispatcher
	Logger *logger.Logger
}

// Service composes persisted orders from session carts.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (orders.OrderDTO, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	carts  cartAccess
	events eventDispatcher
	logg   *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart access is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:   params.Repo,
		tx:     params.Tx,
		carts:  params.Carts,
		events: params.Events,
		logg:   params.Logger,
	}, nil
}

// Checkout snapshots the cart into an order. The order and its items land in
// one transaction; the cart is cleared only after the commit, and the
// confirmation event is best-effort.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return orders.OrderDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in to place an order")
	}

	ledger, err := s.carts.LoadLedger(ctx, userID)
	if err != nil {
		return orders.OrderDTO{}, err
	}
	if ledger.IsEmpty() {
		return orders.OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := ComposeOrder(userID, ledger, input.Shipping, input.DeliveryMethod, input.Notes)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.InsertOrder(ctx, tx, &order)
	})
	if err != nil {
		return orders.OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	// The order exists now; a failed cart clear must not undo the sale.
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Warn(logCtx, "cart clear after checkout failed")
	}

	dto := orders.NewOrderDTO(&order)
	if s.events != nil {
		s.events.OrderEvent(ctx, events.TypeOrderCreated, order.ID.String(), dto)
	}
	return dto, nil
}
