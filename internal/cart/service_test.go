package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maisonvela/vela-backend/internal/catalog"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/redis"
)

type memoryRedis struct {
	values map[string]string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}}
}

func (m *memoryRedis) CartKey(userID string) string {
	return "vela:cart:" + userID
}

func (m *memoryRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return nil
}

func (m *memoryRedis) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type fakeResolver struct {
	products map[uuid.UUID]catalog.Product
}

func (f *fakeResolver) GetProduct(_ context.Context, id uuid.UUID, _ bool) (catalog.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (f *fakeResolver) ResolveProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error) {
	resolved := map[uuid.UUID]catalog.Product{}
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			resolved[id] = product
		}
	}
	return resolved, nil
}

func newTestService(t *testing.T, products ...catalog.Product) (Service, *fakeResolver) {
	t.Helper()

	store, err := NewStore(newMemoryRedis(), time.Hour)
	require.NoError(t, err)

	resolver := &fakeResolver{products: map[uuid.UUID]catalog.Product{}}
	for _, p := range products {
		resolver.products[p.ID] = p
	}

	svc, err := NewService(ServiceParams{Store: store, Products: resolver})
	require.NoError(t, err)
	return svc, resolver
}

func TestCartRoundTrip(t *testing.T) {
	product := testProduct("40.00")
	svc, _ := newTestService(t, product)
	ctx := context.Background()
	userID := uuid.New()

	dto, err := svc.AddItem(ctx, userID, product.ID, "M", "Navy", 2)
	require.NoError(t, err)
	require.Equal(t, 2, dto.TotalItems)
	require.Equal(t, "80.00", dto.TotalPrice.StringFixed(2))

	dto, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 2, dto.Items[0].Quantity)
}

func TestCartMergesAcrossRequests(t *testing.T) {
	product := testProduct("10.00")
	svc, _ := newTestService(t, product)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, product.ID, "M", "Navy", 1)
	require.NoError(t, err)
	dto, err := svc.AddItem(ctx, userID, product.ID, "M", "Navy", 2)
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	require.Equal(t, 3, dto.Items[0].Quantity)
}

func TestCartUpdateAndRemove(t *testing.T) {
	product := testProduct("10.00")
	svc, _ := newTestService(t, product)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, product.ID, "M", "Navy", 5)
	require.NoError(t, err)

	dto, err := svc.UpdateItem(ctx, userID, product.ID, "M", "Navy", 2)
	require.NoError(t, err)
	require.Equal(t, 2, dto.TotalItems)

	dto, err = svc.RemoveItem(ctx, userID, product.ID, "M", "Navy")
	require.NoError(t, err)
	require.Empty(t, dto.Items)
}

func TestCartDropsVanishedProducts(t *testing.T) {
	product := testProduct("10.00")
	svc, resolver := newTestService(t, product)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, product.ID, "M", "Navy", 1)
	require.NoError(t, err)

	delete(resolver.products, product.ID)

	dto, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, dto.Items)
}

func TestCartReflectsLivePriceOnRehydration(t *testing.T) {
	product := testProduct("100.00")
	svc, resolver := newTestService(t, product)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, product.ID, "M", "Navy", 1)
	require.NoError(t, err)

	product.Price = decimal.RequireFromString("80.00")
	resolver.products[product.ID] = product

	dto, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "80.00", dto.TotalPrice.StringFixed(2))
}

func TestClearCart(t *testing.T) {
	product := testProduct("10.00")
	svc, _ := newTestService(t, product)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, product.ID, "", "", 1)
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, userID))

	dto, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, dto.Items)
}
