package notifications

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/maisonvela/vela-backend/internal/orders"
	"github.com/maisonvela/vela-backend/pkg/enums"
)

func sampleOrder(t *testing.T) orders.OrderDTO {
	t.Helper()
	id, err := uuid.Parse("a1b2c3d4-0000-4000-8000-000000000000")
	require.NoError(t, err)

	size := "M"
	color := "Noir"
	return orders.OrderDTO{
		ID:           id,
		Status:       enums.OrderStatusPending,
		Subtotal:     decimal.RequireFromString("120.00"),
		ShippingCost: decimal.RequireFromString("15.00"),
		Tax:          decimal.RequireFromString("9.60"),
		Total:        decimal.RequireFromString("144.60"),
		Shipping: orders.ShippingInfoDTO{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Address: "1 Rue de la Paix",
			City:    "Paris",
			State:   "IDF",
			Zip:     "75002",
			Country: "France",
		},
		DeliveryMethod: "express",
		Items: []orders.OrderItemDTO{
			{
				ProductName: "Silk Scarf",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("60.00"),
				TotalPrice:  decimal.RequireFromString("120.00"),
				Size:        &size,
				Color:       &color,
			},
		},
	}
}

func TestOrderRef(t *testing.T) {
	order := sampleOrder(t)
	require.Equal(t, "A1B2C3D4", OrderRef(order.ID))
}

func TestBuildOrderConfirmation(t *testing.T) {
	subject, html, err := BuildOrderConfirmation(sampleOrder(t))
	require.NoError(t, err)

	require.Equal(t, "Order Confirmation - Order #A1B2C3D4", subject)
	require.Contains(t, html, "Hi Ada Lovelace,")
	require.Contains(t, html, "#A1B2C3D4")
	require.Contains(t, html, "Silk Scarf")
	require.Contains(t, html, "Size: M, Color: Noir")
	require.Contains(t, html, "$120.00")
	require.Contains(t, html, "Shipping (express): <span style=\"color: #374151;\">$15.00</span>")
	require.Contains(t, html, "$144.60")
	require.Contains(t, html, "Paris, IDF 75002")
	require.Contains(t, html, "MAISON VELA")
}

func TestBuildStatusUpdatePerStatusCopy(t *testing.T) {
	order := sampleOrder(t)

	subject, html, err := BuildStatusUpdate(orders.StatusChangedEvent{
		Order:     order,
		NewStatus: enums.OrderStatusShipped,
	})
	require.NoError(t, err)
	require.Equal(t, "Order Shipped - Order #A1B2C3D4", subject)
	require.Contains(t, html, "Your Order Is On Its Way")
	require.Contains(t, html, "tracking information")
	require.NotContains(t, html, "feedback")

	subject, html, err = BuildStatusUpdate(orders.StatusChangedEvent{
		Order:     order,
		NewStatus: enums.OrderStatusDelivered,
	})
	require.NoError(t, err)
	require.Equal(t, "Order Delivered - Order #A1B2C3D4", subject)
	require.Contains(t, html, "feedback")
}

func TestBuildStatusUpdateCancelledUsesWarningColor(t *testing.T) {
	_, html, err := BuildStatusUpdate(orders.StatusChangedEvent{
		Order:     sampleOrder(t),
		NewStatus: enums.OrderStatusCancelled,
	})
	require.NoError(t, err)
	require.Contains(t, html, "#dc2626")
	require.Contains(t, html, "Your Order Has Been Cancelled")
}

func TestBuildStatusUpdateUnknownStatusFallback(t *testing.T) {
	subject, html, err := BuildStatusUpdate(orders.StatusChangedEvent{
		Order:     sampleOrder(t),
		NewStatus: enums.OrderStatus("archived"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(subject, "Order Status Update"))
	require.Contains(t, html, "updated to: archived")
}
