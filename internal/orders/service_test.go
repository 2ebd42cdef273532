package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

type fakeRepo struct {
	orders   map[uuid.UUID]*models.Order
	statuses []enums.OrderStatus
}

func newFakeRepo(rows ...*models.Order) *fakeRepo {
	repo := &fakeRepo{orders: map[uuid.UUID]*models.Order{}}
	for _, row := range rows {
		repo.orders[row.ID] = row
	}
	return repo
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	row, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (f *fakeRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	for _, row := range f.orders {
		if row.UserID != nil && *row.UserID == userID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (f *fakeRepo) List(_ context.Context, status, _ string, _ int) ([]models.Order, int64, string, error) {
	var rows []models.Order
	for _, row := range f.orders {
		if status == "" || string(row.Status) == status {
			rows = append(rows, *row)
		}
	}
	return rows, int64(len(rows)), "", nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	row, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Status = status
	f.statuses = append(f.statuses, status)
	return nil
}

type recordingDispatcher struct {
	types    []string
	payloads []any
}

func (d *recordingDispatcher) OrderEvent(_ context.Context, eventType, _ string, payload any) {
	d.types = append(d.types, eventType)
	d.payloads = append(d.payloads, payload)
}

func testOrder(userID uuid.UUID) *models.Order {
	uid := userID
	return &models.Order{
		ID:       uuid.New(),
		UserID:   &uid,
		Status:   enums.OrderStatusPending,
		Subtotal: decimal.NewFromInt(120),
		Tax:      decimal.RequireFromString("9.60"),
		Total:    decimal.RequireFromString("129.60"),
	}
}

func TestUpdateStatusWritesAndEmitsSnapshot(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	repo := newFakeRepo(order)
	dispatcher := &recordingDispatcher{}

	svc, err := NewService(ServiceParams{Repo: repo, Events: dispatcher})
	require.NoError(t, err)

	dto, err := svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "Shipped"})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusShipped, dto.Status)
	require.Equal(t, []enums.OrderStatus{enums.OrderStatusShipped}, repo.statuses)

	require.Equal(t, []string{events.TypeOrderStatusChanged}, dispatcher.types)
	payload, ok := dispatcher.payloads[0].(StatusChangedEvent)
	require.True(t, ok)
	require.Equal(t, enums.OrderStatusPending, payload.Order.Status)
	require.Equal(t, enums.OrderStatusShipped, payload.NewStatus)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	order.Status = enums.OrderStatusDelivered
	repo := newFakeRepo(order)

	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)

	// Terminal states are not enforced; moving backwards is permitted.
	dto, err := svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, dto.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	order := testOrder(uuid.New())
	svc, err := NewService(ServiceParams{Repo: newFakeRepo(order)})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "misplaced"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetOrderForUserEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	order := testOrder(owner)
	svc, err := NewService(ServiceParams{Repo: newFakeRepo(order)})
	require.NoError(t, err)

	_, err = svc.GetOrderForUser(context.Background(), order.ID, owner)
	require.NoError(t, err)

	_, err = svc.GetOrderForUser(context.Background(), order.ID, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestGetOrderNotFound(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: newFakeRepo()})
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
