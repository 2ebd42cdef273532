package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maisonvela/vela-backend/internal/catalog"
)

func testProduct(price string) catalog.Product {
	return catalog.Product{
		ID:    uuid.New(),
		Name:  "Test Product",
		Price: decimal.RequireFromString(price),
	}
}

func TestAddMergesQuantityForSameKey(t *testing.T) {
	ledger := NewLedger()
	product := testProduct("40.00")

	ledger.Add(product, "M", "Navy", 1)
	ledger.Add(product, "M", "Navy", 2)
	ledger.Add(product, "M", "Navy", 3)

	lines := ledger.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 6, lines[0].Quantity)
	require.Equal(t, 6, ledger.TotalItems())
}

func TestAddKeepsDistinctKeysSeparate(t *testing.T) {
	ledger := NewLedger()
	product := testProduct("40.00")

	ledger.Add(product, "M", "Navy", 1)
	ledger.Add(product, "L", "Navy", 1)
	ledger.Add(product, "M", "Red", 1)

	require.Len(t, ledger.Lines(), 3)
}

func TestAddCoercesQuantityBelowOne(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(testProduct("10.00"), "S", "Black", 0)

	lines := ledger.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 1, lines[0].Quantity)
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	ledger := NewLedger()
	product := testProduct("25.00")

	ledger.Add(product, "M", "Navy", 5)
	ledger.UpdateQuantity(product.ID, "M", "Navy", 2)

	lines := ledger.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ledger := NewLedger()
	product := testProduct("25.00")

	ledger.Add(product, "M", "Navy", 5)
	ledger.UpdateQuantity(product.ID, "M", "Navy", 0)

	require.True(t, ledger.IsEmpty())

	ledger.Add(product, "M", "Navy", 5)
	ledger.UpdateQuantity(product.ID, "M", "Navy", -3)
	require.True(t, ledger.IsEmpty())
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	ledger := NewLedger()
	product := testProduct("25.00")

	ledger.Add(product, "M", "Navy", 1)
	ledger.Remove(product.ID, "L", "Navy")

	require.Len(t, ledger.Lines(), 1)
}

func TestTotalsReflectEffectivePrices(t *testing.T) {
	ledger := NewLedger()
	a := testProduct("40.00")
	b := testProduct("15.50")

	ledger.Add(a, "M", "Navy", 2)
	ledger.Add(b, "", "", 1)

	require.Equal(t, 3, ledger.TotalItems())
	require.Equal(t, "95.50", ledger.TotalPrice().StringFixed(2))
}

func TestTotalPriceTracksLivePriceChanges(t *testing.T) {
	ledger := NewLedger()
	product := testProduct("100.00")

	ledger.Add(product, "M", "Navy", 1)
	require.Equal(t, "100.00", ledger.TotalPrice().StringFixed(2))

	// A rehydrated ledger carries the updated projection.
	product.Price = decimal.RequireFromString("80.00")
	rehydrated := NewLedger()
	for _, line := range ledger.Lines() {
		rehydrated.Add(product, line.Size, line.Color, line.Quantity)
	}
	require.Equal(t, "80.00", rehydrated.TotalPrice().StringFixed(2))
}

func TestClear(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(testProduct("10.00"), "S", "Black", 2)
	ledger.Clear()

	require.True(t, ledger.IsEmpty())
	require.Equal(t, 0, ledger.TotalItems())
	require.True(t, ledger.TotalPrice().Equal(decimal.Zero))
}
