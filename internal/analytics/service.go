package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/internal/catalog"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

// DashboardStats is the admin overview: this calendar month against last.
type DashboardStats struct {
	Revenue       decimal.Decimal `json:"revenue"`
	RevenueChange float64         `json:"revenue_change"`
	Orders        int64           `json:"orders"`
	OrdersChange  float64         `json:"orders_change"`
	Products      int64           `json:"products"`
	Customers     int64           `json:"customers"`
	LowStockCount int             `json:"low_stock_count"`
}

// allowed windows for the revenue series, in days.
var seriesWindows = map[int]bool{7: true, 14: true, 30: true}

// ServiceParams groups dependencies for the analytics service.
type ServiceParams struct {
	Repo *Repository
	// Location anchors calendar-day and month boundaries. Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
}

// Service serves the admin dashboard aggregations.
type Service interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	RevenueSeries(ctx context.Context, days int) ([]DailyBucket, error)
	TopSellers(ctx context.Context) ([]TopSeller, error)
	LowStock(ctx context.Context) ([]catalog.Product, error)
}

type service struct {
	repo *Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService builds an analytics service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "analytics repo is required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, loc: loc, now: now}, nil
}

func (s *service) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := s.now().In(s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	orders, revenue, err := s.repo.MonthlyTotals(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return DashboardStats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate current month")
	}
	prevOrders, prevRevenue, err := s.repo.MonthlyTotals(ctx, prevMonthStart, monthStart)
	if err != nil {
		return DashboardStats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate previous month")
	}

	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return DashboardStats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return DashboardStats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customers")
	}
	lowStock, err := s.repo.LowStockProducts(ctx, LowStockThreshold)
	if err != nil {
		return DashboardStats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load low stock")
	}

	return DashboardStats{
		Revenue:       revenue,
		RevenueChange: ChangePercent(revenue, prevRevenue),
		Orders:        orders,
		OrdersChange:  ChangePercentInt(orders, prevOrders),
		Products:      products,
		Customers:     customers,
		LowStockCount: len(lowStock),
	}, nil
}

func (s *service) RevenueSeries(ctx context.Context, days int) ([]DailyBucket, error) {
	if !seriesWindows[days] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window must be 7, 14, or 30 days")
	}

	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).
		AddDate(0, 0, -(days - 1))

	orders, err := s.repo.OrdersSince(ctx, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders for series")
	}
	return BucketDaily(orders, days, now, s.loc), nil
}

func (s *service) TopSellers(ctx context.Context) ([]TopSeller, error) {
	lines, err := s.repo.SaleLines(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale lines")
	}
	return RankTopSellers(lines), nil
}

func (s *service) LowStock(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.repo.LowStockProducts(ctx, LowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load low stock")
	}
	items := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		items = append(items, catalog.Project(&rows[i]))
	}
	return items, nil
}
