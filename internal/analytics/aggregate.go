package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopSellerLimit caps the best-sellers list.
const TopSellerLimit = 4

// LowStockThreshold flags products running out. Fixed, not configurable.
const LowStockThreshold = 20

// OrderStat is the slice of an order the aggregations need.
type OrderStat struct {
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleLine is one order item row feeding the best-sellers aggregation.
type SaleLine struct {
	ProductID   *uuid.UUID
	ProductName string
	Quantity    int
}

// DailyBucket is one day of the revenue series.
type DailyBucket struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopSeller is one row of the best-sellers list.
type TopSeller struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ChangePercent compares a value against the prior period: the relative
// change when the prior period had volume, else 100 for growth from zero and
// 0 for no activity at all. Rounded to one decimal.
func ChangePercent(current, previous decimal.Decimal) float64 {
	if previous.IsPositive() {
		change, _ := current.Sub(previous).
			Div(previous).
			Mul(decimal.NewFromInt(100)).
			Round(1).
			Float64()
		return change
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}

// ChangePercentInt is ChangePercent over plain counts.
func ChangePercentInt(current, previous int64) float64 {
	return ChangePercent(decimal.NewFromInt(current), decimal.NewFromInt(previous))
}

// BucketDaily folds orders into one bucket per calendar day for the window
// ending today. Days with no orders appear zero-filled; output is
// chronological. Bucket keys use the order's creation date in loc.
func BucketDaily(orders []OrderStat, days int, now time.Time, loc *time.Location) []DailyBucket {
	if days <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	today := now.In(loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(days - 1))

	buckets := make([]DailyBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = DailyBucket{Date: date, Revenue: decimal.Zero}
		index[date] = i
	}

	for _, order := range orders {
		date := order.CreatedAt.In(loc).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			continue
		}
		buckets[i].Orders++
		buckets[i].Revenue = buckets[i].Revenue.Add(order.Total)
	}

	return buckets
}

// RankTopSellers aggregates quantities by product ID, falling back to the
// product name as the key when the product was deleted, and returns the top
// rows by quantity.
func RankTopSellers(lines []SaleLine) []TopSeller {
	totals := make(map[string]*TopSeller)
	order := make([]string, 0)

	for _, line := range lines {
		key := line.ProductName
		if line.ProductID != nil {
			key = line.ProductID.String()
		}
		seller, ok := totals[key]
		if !ok {
			seller = &TopSeller{Key: key, Name: line.ProductName}
			totals[key] = seller
			order = append(order, key)
		}
		seller.Quantity += line.Quantity
	}

	ranked := make([]TopSeller, 0, len(totals))
	for _, key := range order {
		ranked = append(ranked, *totals[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})

	if len(ranked) > TopSellerLimit {
		ranked = ranked[:TopSellerLimit]
	}
	return ranked
}
