package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestChangePercent(t *testing.T) {
	require.Equal(t, 50.0, ChangePercent(decimal.NewFromInt(150), decimal.NewFromInt(100)))
	require.Equal(t, -25.0, ChangePercent(decimal.NewFromInt(75), decimal.NewFromInt(100)))
	require.Equal(t, 100.0, ChangePercent(decimal.NewFromInt(40), decimal.Zero))
	require.Equal(t, 0.0, ChangePercent(decimal.Zero, decimal.Zero))
}

func TestChangePercentRoundsToOneDecimal(t *testing.T) {
	// (110 - 90) / 90 * 100 = 22.22...
	require.Equal(t, 22.2, ChangePercent(decimal.NewFromInt(110), decimal.NewFromInt(90)))
}

func TestBucketDailyZeroFillsWindow(t *testing.T) {
	now := time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)
	orders := []OrderStat{
		{Total: decimal.NewFromInt(100), CreatedAt: time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)},
		{Total: decimal.NewFromInt(50), CreatedAt: time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)},
		{Total: decimal.NewFromInt(30), CreatedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)},
		// Outside the window.
		{Total: decimal.NewFromInt(999), CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}

	buckets := BucketDaily(orders, 7, now, time.UTC)
	require.Len(t, buckets, 7)

	require.Equal(t, "2025-06-08", buckets[0].Date)
	require.Equal(t, "2025-06-14", buckets[6].Date)

	require.Equal(t, 2, buckets[6].Orders)
	require.Equal(t, "150.00", buckets[6].Revenue.StringFixed(2))

	require.Equal(t, 1, buckets[2].Orders)
	require.Equal(t, "30.00", buckets[2].Revenue.StringFixed(2))

	for _, i := range []int{1, 3, 4, 5} {
		require.Zero(t, buckets[i].Orders)
		require.True(t, buckets[i].Revenue.IsZero())
	}
}

func TestRankTopSellersAggregatesByProductID(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	lines := []SaleLine{
		{ProductID: &a, ProductName: "Tee", Quantity: 3},
		{ProductID: &a, ProductName: "Tee", Quantity: 2},
		{ProductID: &b, ProductName: "Scarf", Quantity: 4},
	}

	ranked := RankTopSellers(lines)
	require.Len(t, ranked, 2)
	require.Equal(t, "Tee", ranked[0].Name)
	require.Equal(t, 5, ranked[0].Quantity)
	require.Equal(t, "Scarf", ranked[1].Name)
}

func TestRankTopSellersFallsBackToNameKey(t *testing.T) {
	lines := []SaleLine{
		{ProductName: "Deleted Jacket", Quantity: 2},
		{ProductName: "Deleted Jacket", Quantity: 3},
	}

	ranked := RankTopSellers(lines)
	require.Len(t, ranked, 1)
	require.Equal(t, "Deleted Jacket", ranked[0].Key)
	require.Equal(t, 5, ranked[0].Quantity)
}

func TestRankTopSellersCapsAtFour(t *testing.T) {
	var lines []SaleLine
	for i := 0; i < 6; i++ {
		id := uuid.New()
		lines = append(lines, SaleLine{ProductID: &id, ProductName: "P", Quantity: i + 1})
	}

	ranked := RankTopSellers(lines)
	require.Len(t, ranked, TopSellerLimit)
	require.Equal(t, 6, ranked[0].Quantity)
}
