package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
)

// OrderDTO is the order payload returned to clients and carried on order
// events. Items are the immutable snapshots taken at checkout.
type OrderDTO struct {
	ID             uuid.UUID         `json:"id"`
	UserID         *uuid.UUID        `json:"user_id,omitempty"`
	Status         enums.OrderStatus `json:"status"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	ShippingCost   decimal.Decimal   `json:"shipping_cost"`
	Tax            decimal.Decimal   `json:"tax"`
	Total          decimal.Decimal   `json:"total"`
	Shipping       ShippingInfoDTO   `json:"shipping"`
	DeliveryMethod string            `json:"delivery_method"`
	Notes          *string           `json:"notes,omitempty"`
	Items          []OrderItemDTO    `json:"items"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ShippingInfoDTO is the contact and address block snapshotted on the order.
type ShippingInfoDTO struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Zip     string  `json:"zip"`
	Country string  `json:"country"`
}

// OrderItemDTO is one line of the order snapshot.
type OrderItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	ProductImage *string         `json:"product_image,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Size         *string         `json:"size,omitempty"`
	Color        *string         `json:"color,omitempty"`
}

// OrderPage is one page of orders for admin listings.
type OrderPage struct {
	Items      []OrderDTO `json:"items"`
	Total      int        `json:"total"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// UpdateStatusInput is the admin payload for a status change.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// NewOrderDTO maps a stored order with its items to the payload shape.
func NewOrderDTO(row *models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(row.Items))
	for i := range row.Items {
		item := &row.Items[i]
		items = append(items, OrderItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			Size:         item.Size,
			Color:        item.Color,
		})
	}

	return OrderDTO{
		ID:           row.ID,
		UserID:       row.UserID,
		Status:       row.Status,
		Subtotal:     row.Subtotal,
		ShippingCost: row.ShippingCost,
		Tax:          row.Tax,
		Total:        row.Total,
		Shipping: ShippingInfoDTO{
			Name:    row.ShippingName,
			Email:   row.ShippingEmail,
			Phone:   row.ShippingPhone,
			Address: row.ShippingAddress,
			City:    row.ShippingCity,
			State:   row.ShippingState,
			Zip:     row.ShippingZip,
			Country: row.ShippingCountry,
		},
		DeliveryMethod: row.DeliveryMethod,
		Notes:          row.Notes,
		Items:          items,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
