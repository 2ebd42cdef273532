package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/pkg/enums"
)

// Order is created atomically with its items at checkout. Money columns are
// frozen at creation; only status and updated_at change afterwards.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          *uuid.UUID        `gorm:"column:user_id;type:uuid"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null"`
	ShippingCost    decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(10,2);not null"`
	Tax             decimal.Decimal   `gorm:"column:tax;type:numeric(10,2);not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	ShippingName    string            `gorm:"column:shipping_name;not null"`
	ShippingEmail   string            `gorm:"column:shipping_email;not null"`
	ShippingPhone   *string           `gorm:"column:shipping_phone"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`
	ShippingCity    string            `gorm:"column:shipping_city;not null"`
	ShippingState   string            `gorm:"column:shipping_state;not null"`
	ShippingZip     string            `gorm:"column:shipping_zip;not null"`
	ShippingCountry string            `gorm:"column:shipping_country;not null;default:'United States'"`
	DeliveryMethod  string            `gorm:"column:delivery_method;not null"`
	Notes           *string           `gorm:"column:notes"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
