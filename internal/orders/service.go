package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

type eventDispatcher interface {
	OrderEvent(ctx context.Context, eventType, aggregateID string, payload any)
}

// StatusChangedEvent is the payload published on every status update. Order
// is the snapshot loaded before the write, per the notification contract.
type StatusChangedEvent struct {
	Order     OrderDTO          `json:"order"`
	NewStatus enums.OrderStatus `json:"new_status"`
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo   Repository
	Events eventDispatcher
}

// Service exposes order reads and the admin status lifecycle.
type Service interface {
	GetOrder(ctx context.Context, id uuid.UUID) (OrderDTO, error)
	GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	List(ctx context.Context, status, cursor string, limit int) (OrderPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (OrderDTO, error)
}

type service struct {
	repo   Repository
	events eventDispatcher
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	return &service{
		repo:   params.Repo,
		events: params.Events,
	}, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	return NewOrderDTO(row), nil
}

func (s *service) GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (OrderDTO, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	if row.UserID == nil || *row.UserID != userID {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another account")
	}
	return NewOrderDTO(row), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	items := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		items = append(items, NewOrderDTO(&rows[i]))
	}
	return items, nil
}

func (s *service) List(ctx context.Context, status, cursor string, limit int) (OrderPage, error) {
	status = strings.TrimSpace(status)
	if status != "" && !enums.OrderStatus(status).IsValid() {
		return OrderPage{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	rows, total, nextCursor, err := s.repo.List(ctx, status, cursor, limit)
	if err != nil {
		return OrderPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	items := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		items = append(items, NewOrderDTO(&rows[i]))
	}
	return OrderPage{
		Items:      items,
		Total:      int(total),
		NextCursor: nextCursor,
	}, nil
}

// UpdateStatus writes the new status without transition validation: any
// status may follow any other. The pre-update snapshot rides on the event so
// notifications describe the order as the admin saw it.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (OrderDTO, error) {
	status := enums.OrderStatus(strings.TrimSpace(strings.ToLower(input.Status)))
	if !status.IsValid() {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	row, err := s.load(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	snapshot := NewOrderDTO(row)

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	if s.events != nil {
		s.events.OrderEvent(ctx, events.TypeOrderStatusChanged, id.String(), StatusChangedEvent{
			Order:     snapshot,
			NewStatus: status,
		})
	}

	updated := snapshot
	updated.Status = status
	return updated, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return row, nil
}
