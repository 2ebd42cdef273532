package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog row. Colors holds one string per variant,
// either a JSON object {"name","hex"} or a bare color name; the catalog
// projection parses it exactly once.
type Product struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string           `gorm:"column:name;not null"`
	Description        *string          `gorm:"column:description"`
	Price              decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	SalePrice          *decimal.Decimal `gorm:"column:sale_price;type:numeric(10,2)"`
	DiscountPercentage *float64         `gorm:"column:discount_percentage;type:numeric(5,2)"`
	Images             pq.StringArray   `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Sizes              pq.StringArray   `gorm:"column:sizes;type:text[];not null;default:ARRAY[]::text[]"`
	Colors             pq.StringArray   `gorm:"column:colors;type:text[];not null;default:ARRAY[]::text[]"`
	CategoryID         *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Category           *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Stock              int              `gorm:"column:stock;not null;default:0"`
	Featured           bool             `gorm:"column:featured;not null;default:false"`
	IsNew              bool             `gorm:"column:is_new;not null;default:false"`
	IsVisible          bool             `gorm:"column:is_visible;not null;default:true"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
