package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/internal/cart"
	"github.com/maisonvela/vela-backend/internal/catalog"
	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type recordingRepo struct {
	inserted []*models.Order
	err      error
}

func (r *recordingRepo) InsertOrder(_ context.Context, _ *gorm.DB, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	order.ID = uuid.New()
	r.inserted = append(r.inserted, order)
	return nil
}

type fakeCarts struct {
	ledgers map[uuid.UUID]*cart.Ledger
	cleared []uuid.UUID
}

func (f *fakeCarts) LoadLedger(_ context.Context, userID uuid.UUID) (*cart.Ledger, error) {
	if ledger, ok := f.ledgers[userID]; ok {
		return ledger, nil
	}
	return cart.NewLedger(), nil
}

func (f *fakeCarts) ClearCart(_ context.Context, userID uuid.UUID) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

type recordingDispatcher struct {
	types []string
}

func (d *recordingDispatcher) OrderEvent(_ context.Context, eventType, _ string, _ any) {
	d.types = append(d.types, eventType)
}

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		Shipping: ShippingInfo{
			Name:    "Avery Quinn",
			Email:   "avery@example.com",
			Address: "12 Mercer St",
			City:    "New York",
			State:   "NY",
			Zip:     "10013",
		},
		DeliveryMethod: string(enums.DeliveryStandard),
	}
}

func newCheckoutService(t *testing.T, repo Repository, carts cartAccess, dispatcher eventDispatcher) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Tx:     fakeTx{},
		Carts:  carts,
		Events: dispatcher,
		Logger: logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled")}),
	})
	require.NoError(t, err)
	return svc
}

func TestCheckoutEndToEnd(t *testing.T) {
	userID := uuid.New()
	ledger := cart.NewLedger()
	ledger.Add(catalog.Product{
		ID:    uuid.New(),
		Name:  "Cotton Tee",
		Price: decimal.NewFromInt(40),
	}, "M", "Navy", 3)

	repo := &recordingRepo{}
	carts := &fakeCarts{ledgers: map[uuid.UUID]*cart.Ledger{userID: ledger}}
	dispatcher := &recordingDispatcher{}
	svc := newCheckoutService(t, repo, carts, dispatcher)

	dto, err := svc.Checkout(context.Background(), userID, checkoutInput())
	require.NoError(t, err)

	require.Equal(t, "120.00", dto.Subtotal.StringFixed(2))
	require.Equal(t, "129.60", dto.Total.StringFixed(2))
	require.Equal(t, enums.OrderStatusPending, dto.Status)
	require.Len(t, dto.Items, 1)

	require.Len(t, repo.inserted, 1)
	require.Equal(t, []uuid.UUID{userID}, carts.cleared)
	require.Equal(t, []string{events.TypeOrderCreated}, dispatcher.types)
}

func TestCheckoutRequiresAuthenticatedUser(t *testing.T) {
	svc := newCheckoutService(t, &recordingRepo{}, &fakeCarts{}, nil)

	_, err := svc.Checkout(context.Background(), uuid.Nil, checkoutInput())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := newCheckoutService(t, &recordingRepo{}, &fakeCarts{}, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), checkoutInput())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutFailedInsertLeavesCartIntact(t *testing.T) {
	userID := uuid.New()
	ledger := cart.NewLedger()
	ledger.Add(catalog.Product{ID: uuid.New(), Name: "Tote", Price: decimal.NewFromInt(25)}, "", "", 1)

	repo := &recordingRepo{err: errors.New("insert failed")}
	carts := &fakeCarts{ledgers: map[uuid.UUID]*cart.Ledger{userID: ledger}}
	dispatcher := &recordingDispatcher{}
	svc := newCheckoutService(t, repo, carts, dispatcher)

	_, err := svc.Checkout(context.Background(), userID, checkoutInput())
	require.Error(t, err)
	require.Empty(t, carts.cleared)
	require.Empty(t, dispatcher.types)
}
