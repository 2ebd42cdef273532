package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/internal/pricing"
	"github.com/maisonvela/vela-backend/pkg/db/models"
)

// DefaultCategorySlug is used when a product has no category row, typically
// after its category was deleted.
const DefaultCategorySlug = "accessories"

// Product is the read-side projection consumed by listings, the cart, and
// checkout. Price is the effective price a buyer pays; OriginalPrice is set
// only when a sale applies.
type Product struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	OnSale          bool             `json:"on_sale"`
	Images          []string         `json:"images"`
	Sizes           []string         `json:"sizes"`
	Colors          []Color          `json:"colors"`
	Category        CategoryRef      `json:"category"`
	Stock           int              `json:"stock"`
	InStock         bool             `json:"in_stock"`
	Featured        bool             `json:"featured"`
	IsNew           bool             `json:"is_new"`
	IsVisible       bool             `json:"is_visible"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CategoryRef is the joined category surface carried on every product.
type CategoryRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// CategoryDTO is the full category payload for navigation and admin screens.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListParams filters and pages product listings.
type ListParams struct {
	CategorySlug string
	Featured     *bool
	IsNew        *bool
	Search       string
	// IncludeHidden widens the visibility filter for admin reads.
	IncludeHidden bool
	Cursor        string
	Limit         int
}

// ProductPage is one page of projected products.
type ProductPage struct {
	Items      []Product `json:"items"`
	Total      int       `json:"total"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CreateProductInput is the admin payload for a new product.
type CreateProductInput struct {
	Name               string   `json:"name" validate:"required,min=1,max=200"`
	Description        *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price              string   `json:"price" validate:"required"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	Images             []string `json:"images" validate:"omitempty,dive,url"`
	Sizes              []string `json:"sizes"`
	Colors             []Color  `json:"colors"`
	CategoryID         *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Stock              int      `json:"stock" validate:"gte=0"`
	Featured           bool     `json:"featured"`
	IsNew              bool     `json:"is_new"`
	IsVisible          *bool    `json:"is_visible,omitempty"`
}

// UpdateProductInput is a partial admin update; nil fields are left untouched.
type UpdateProductInput struct {
	Name               *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price              *string   `json:"price,omitempty"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	ClearDiscount      bool      `json:"clear_discount,omitempty"`
	Images             *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Sizes              *[]string `json:"sizes,omitempty"`
	Colors             *[]Color  `json:"colors,omitempty"`
	CategoryID         *string   `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ClearCategory      bool      `json:"clear_category,omitempty"`
	Stock              *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Featured           *bool     `json:"featured,omitempty"`
	IsNew              *bool     `json:"is_new,omitempty"`
	IsVisible          *bool     `json:"is_visible,omitempty"`
}

// CreateCategoryInput is the admin payload for a new category.
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Slug        string  `json:"slug" validate:"required,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

// UpdateCategoryInput is a partial admin category update.
type UpdateCategoryInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

// Project maps a stored product row, with its joined category, to the
// consumption shape. All price and color resolution happens here.
func Project(row *models.Product) Product {
	effective := pricing.Effective(row.Price, row.SalePrice)
	onSale := pricing.OnSale(row.Price, row.SalePrice)

	p := Product{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Price:           effective,
		DiscountPercent: pricing.DiscountPercent(row.Price, row.SalePrice),
		OnSale:          onSale,
		Images:          append([]string{}, row.Images...),
		Sizes:           append([]string{}, row.Sizes...),
		Colors:          ParseColors(row.Colors),
		Category:        CategoryRef{Slug: DefaultCategorySlug, Name: "Accessories"},
		Stock:           row.Stock,
		InStock:         row.Stock > 0,
		Featured:        row.Featured,
		IsNew:           row.IsNew,
		IsVisible:       row.IsVisible,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if onSale {
		original := row.Price
		p.OriginalPrice = &original
	}
	if row.Category != nil {
		p.Category = CategoryRef{Slug: row.Category.Slug, Name: row.Category.Name}
	}
	return p
}

// NewCategoryDTO maps a stored category row to its payload.
func NewCategoryDTO(row *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Image:       row.Image,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
