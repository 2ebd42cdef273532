package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/internal/cart"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
)

// TaxRate is the flat rate applied to every order subtotal. Not
// geography-aware.
var TaxRate = decimal.RequireFromString("0.08")

// ExpressShippingCost is the only non-zero delivery charge.
var ExpressShippingCost = decimal.NewFromInt(15)

// Totals is the financial breakdown frozen onto an order at creation.
type Totals struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// ShippingCostFor maps a delivery method to its charge. Unrecognized methods
// ship free, same as standard.
func ShippingCostFor(method string) decimal.Decimal {
	if enums.DeliveryMethod(method) == enums.DeliveryExpress {
		return ExpressShippingCost
	}
	return decimal.Zero
}

// ComposeTotals derives the breakdown from a cart subtotal and delivery
// method. Tax applies to the subtotal only, rounded to cents.
func ComposeTotals(subtotal decimal.Decimal, deliveryMethod string) Totals {
	shipping := ShippingCostFor(deliveryMethod)
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}

// ComposeOrder builds the order row and its immutable item snapshots from the
// cart. Unit prices are the effective prices at composition time; later
// product edits never touch these rows.
func ComposeOrder(userID uuid.UUID, ledger *cart.Ledger, shipping ShippingInfo, deliveryMethod string, notes *string) models.Order {
	totals := ComposeTotals(ledger.TotalPrice(), deliveryMethod)

	lines := ledger.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		productID := line.Product.ID
		item := models.OrderItem{
			ProductID:   &productID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			TotalPrice:  line.LineTotal(),
		}
		if len(line.Product.Images) > 0 {
			image := line.Product.Images[0]
			item.ProductImage = &image
		}
		if line.Size != "" {
			size := line.Size
			item.Size = &size
		}
		if line.Color != "" {
			color := line.Color
			item.Color = &color
		}
		items = append(items, item)
	}

	uid := userID
	order := models.Order{
		UserID:          &uid,
		Status:          enums.OrderStatusPending,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ShippingName:    shipping.Name,
		ShippingEmail:   shipping.Email,
		ShippingPhone:   shipping.Phone,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingState:   shipping.State,
		ShippingZip:     shipping.Zip,
		ShippingCountry: shipping.Country,
		DeliveryMethod:  deliveryMethod,
		Notes:           notes,
		Items:           items,
	}
	if order.ShippingCountry == "" {
		order.ShippingCountry = "United States"
	}
	return order
}
