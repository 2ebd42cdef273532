package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots a cart line at checkout. Name, image, and prices are
// denormalized so later product edits (or deletion, which nulls product_id)
// never alter order history.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID    *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	ProductName  string          `gorm:"column:product_name;not null"`
	ProductImage *string         `gorm:"column:product_image"`
	Quantity     int             `gorm:"column:quantity;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	Size         *string         `gorm:"column:size"`
	Color        *string         `gorm:"column:color"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
