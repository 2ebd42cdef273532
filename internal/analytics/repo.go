package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/pkg/db/models"
)

// Repository reads order and product rows for dashboard aggregation.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type monthlyRow struct {
	Orders  int64           `gorm:"column:orders"`
	Revenue decimal.Decimal `gorm:"column:revenue"`
}

// MonthlyTotals sums order count and revenue for [from, to).
func (r *Repository) MonthlyTotals(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error) {
	var row monthlyRow
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).
		Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return row.Orders, row.Revenue, nil
}

// OrdersSince returns totals and timestamps for orders created at or after
// the cutoff, for the revenue series.
func (r *Repository) OrdersSince(ctx context.Context, since time.Time) ([]OrderStat, error) {
	var rows []OrderStat
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("total, created_at").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SaleLines returns every order item's identity and quantity for the
// best-sellers aggregation.
func (r *Repository) SaleLines(ctx context.Context) ([]SaleLine, error) {
	var rows []SaleLine
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("product_id, product_name, quantity").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LowStockProducts returns products under the threshold, most depleted first.
func (r *Repository) LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountProducts returns the catalog size, hidden rows included.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCustomers returns the number of registered profiles.
func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
