// Package notifications turns order events into transactional emails.
package notifications

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/internal/orders"
	"github.com/maisonvela/vela-backend/pkg/enums"
)

const brandName = "MAISON VELA"

// statusCopy carries the subject line and body copy for each order status
// a customer can be notified about.
type statusCopy struct {
	Subject string
	Heading string
	Message string
}

var statusCopyByStatus = map[enums.OrderStatus]statusCopy{
	enums.OrderStatusConfirmed: {
		Subject: "Order Confirmed",
		Heading: "Your Order Has Been Confirmed",
		Message: "Great news! We've confirmed your order and it's now being prepared for processing.",
	},
	enums.OrderStatusProcessing: {
		Subject: "Order Being Processed",
		Heading: "Your Order Is Being Processed",
		Message: "Your order is currently being prepared and packaged with care.",
	},
	enums.OrderStatusShipped: {
		Subject: "Order Shipped",
		Heading: "Your Order Is On Its Way",
		Message: "Exciting news! Your order has been shipped and is on its way to you.",
	},
	enums.OrderStatusDelivered: {
		Subject: "Order Delivered",
		Heading: "Your Order Has Been Delivered",
		Message: "Your order has been successfully delivered. We hope you love your purchase!",
	},
	enums.OrderStatusCancelled: {
		Subject: "Order Cancelled",
		Heading: "Your Order Has Been Cancelled",
		Message: "Your order has been cancelled. If you have any questions, please contact our support team.",
	},
}

func copyForStatus(status enums.OrderStatus) statusCopy {
	if known, ok := statusCopyByStatus[status]; ok {
		return known
	}
	return statusCopy{
		Subject: "Order Status Update",
		Heading: "Your Order Status Has Been Updated",
		Message: fmt.Sprintf("Your order status has been updated to: %s.", status),
	}
}

// OrderRef is the short order number shown to customers, the first eight
// hex characters of the order ID uppercased.
func OrderRef(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}

var confirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f9fafb; margin: 0; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden;">
      <div style="background-color: #18181b; color: #ffffff; padding: 32px; text-align: center;">
        <h1 style="margin: 0; font-size: 24px; font-weight: 600;">Order Confirmed!</h1>
        <p style="margin: 8px 0 0 0; opacity: 0.9;">Thank you for your purchase</p>
      </div>
      <div style="padding: 32px;">
        <p style="margin: 0 0 16px 0; color: #374151;">Hi {{.CustomerName}},</p>
        <p style="margin: 0 0 24px 0; color: #374151;">
          Your order <strong>#{{.OrderRef}}</strong> has been confirmed and is being processed.
        </p>
        <h2 style="font-size: 18px; color: #18181b; margin: 0 0 16px 0;">Order Details</h2>
        <table style="width: 100%; border-collapse: collapse; margin-bottom: 24px;">
          <thead>
            <tr style="background-color: #f3f4f6;">
              <th style="padding: 12px; text-align: left;">Item</th>
              <th style="padding: 12px; text-align: center;">Qty</th>
              <th style="padding: 12px; text-align: right;">Price</th>
              <th style="padding: 12px; text-align: right;">Total</th>
            </tr>
          </thead>
          <tbody>
            {{range .Items}}<tr>
              <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;">{{.Name}}{{if .Variant}}<br><small style="color: #6b7280;">{{.Variant}}</small>{{end}}</td>
              <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; text-align: center;">{{.Quantity}}</td>
              <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; text-align: right;">${{.UnitPrice}}</td>
              <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; text-align: right;">${{.TotalPrice}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        <div style="background-color: #f9fafb; border-radius: 8px; padding: 16px; margin-bottom: 24px;">
          <p style="margin: 0 0 8px 0; color: #6b7280;">Subtotal: <span style="color: #374151;">${{.Subtotal}}</span></p>
          <p style="margin: 0 0 8px 0; color: #6b7280;">Shipping ({{.DeliveryMethod}}): <span style="color: #374151;">${{.ShippingCost}}</span></p>
          <p style="margin: 0 0 8px 0; color: #6b7280;">Tax: <span style="color: #374151;">${{.Tax}}</span></p>
          <p style="margin: 0; font-weight: 600; color: #18181b;">Total: ${{.Total}}</p>
        </div>
        <h2 style="font-size: 18px; color: #18181b; margin: 0 0 16px 0;">Shipping To</h2>
        <p style="margin: 0 0 24px 0; color: #374151;">
          {{.ShippingAddress}}<br>{{.ShippingCity}}, {{.ShippingState}} {{.ShippingZip}}<br>{{.ShippingCountry}}
        </p>
        <p style="margin-top: 24px; color: #374151;">Best regards,<br><strong>The {{.Brand}} Team</strong></p>
      </div>
      <div style="border-top: 1px solid #e5e7eb; padding: 20px; text-align: center; color: #6b7280; font-size: 14px;">
        <p style="margin: 0;">Thank you for shopping with {{.Brand}}</p>
      </div>
    </div>
  </body>
</html>`))

var statusUpdateTemplate = template.Must(template.New("status_update").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="text-align: center; padding: 20px 0; border-bottom: 2px solid #eee;">
      <h1 style="margin: 0; font-size: 28px; font-weight: 600;">{{.Brand}}</h1>
    </div>
    <div style="padding: 30px 0;">
      <h2 style="color: #111; margin-bottom: 20px;">{{.Heading}}</h2>
      <p>Hi {{.CustomerName}},</p>
      <p>{{.Message}}</p>
      <div style="background: #f8f9fa; border-radius: 8px; padding: 20px; margin: 25px 0;">
        <p style="margin: 0 0 10px 0;"><strong>Order Number:</strong> #{{.OrderRef}}</p>
        <p style="margin: 0 0 10px 0;"><strong>Status:</strong> <span style="text-transform: capitalize; color: {{.StatusColor}};">{{.Status}}</span></p>
        <p style="margin: 0;"><strong>Order Total:</strong> ${{.Total}}</p>
      </div>
      {{if .Shipped}}<p style="color: #666;">You will receive tracking information shortly if applicable.</p>{{end}}
      {{if .Delivered}}<p>We'd love to hear about your experience! If you have any feedback, please don't hesitate to reach out.</p>{{end}}
      <p>If you have any questions about your order, please contact our customer support team.</p>
      <p style="margin-top: 30px;">Best regards,<br><strong>The {{.Brand}} Team</strong></p>
    </div>
    <div style="border-top: 2px solid #eee; padding-top: 20px; text-align: center; color: #666; font-size: 14px;">
      <p style="margin: 0;">Thank you for shopping with {{.Brand}}</p>
    </div>
  </body>
</html>`))

type confirmationItem struct {
	Name       string
	Variant    string
	Quantity   int
	UnitPrice  string
	TotalPrice string
}

type confirmationData struct {
	Brand           string
	CustomerName    string
	OrderRef        string
	Items           []confirmationItem
	Subtotal        string
	ShippingCost    string
	Tax             string
	Total           string
	DeliveryMethod  string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingCountry string
}

type statusUpdateData struct {
	Brand        string
	CustomerName string
	OrderRef     string
	Heading      string
	Message      string
	Status       string
	StatusColor  string
	Total        string
	Shipped      bool
	Delivered    bool
}

// BuildOrderConfirmation renders the confirmation email for a freshly
// placed order.
func BuildOrderConfirmation(order orders.OrderDTO) (subject, html string, err error) {
	items := make([]confirmationItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, confirmationItem{
			Name:       item.ProductName,
			Variant:    variantLine(item.Size, item.Color),
			Quantity:   item.Quantity,
			UnitPrice:  money(item.UnitPrice),
			TotalPrice: money(item.TotalPrice),
		})
	}

	data := confirmationData{
		Brand:           brandName,
		CustomerName:    order.Shipping.Name,
		OrderRef:        OrderRef(order.ID),
		Items:           items,
		Subtotal:        money(order.Subtotal),
		ShippingCost:    money(order.ShippingCost),
		Tax:             money(order.Tax),
		Total:           money(order.Total),
		DeliveryMethod:  order.DeliveryMethod,
		ShippingAddress: order.Shipping.Address,
		ShippingCity:    order.Shipping.City,
		ShippingState:   order.Shipping.State,
		ShippingZip:     order.Shipping.Zip,
		ShippingCountry: order.Shipping.Country,
	}

	var sb strings.Builder
	if err := confirmationTemplate.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("rendering order confirmation: %w", err)
	}
	subject = fmt.Sprintf("Order Confirmation - Order #%s", data.OrderRef)
	return subject, sb.String(), nil
}

// BuildStatusUpdate renders the email sent when an order moves to a new
// status. The order snapshot predates the change; the new status rides
// alongside it.
func BuildStatusUpdate(event orders.StatusChangedEvent) (subject, html string, err error) {
	copyText := copyForStatus(event.NewStatus)

	statusColor := "#16a34a"
	if event.NewStatus == enums.OrderStatusCancelled {
		statusColor = "#dc2626"
	}

	data := statusUpdateData{
		Brand:        brandName,
		CustomerName: event.Order.Shipping.Name,
		OrderRef:     OrderRef(event.Order.ID),
		Heading:      copyText.Heading,
		Message:      copyText.Message,
		Status:       string(event.NewStatus),
		StatusColor:  statusColor,
		Total:        money(event.Order.Total),
		Shipped:      event.NewStatus == enums.OrderStatusShipped,
		Delivered:    event.NewStatus == enums.OrderStatusDelivered,
	}

	var sb strings.Builder
	if err := statusUpdateTemplate.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("rendering status update: %w", err)
	}
	subject = fmt.Sprintf("%s - Order #%s", copyText.Subject, data.OrderRef)
	return subject, sb.String(), nil
}

func variantLine(size, color *string) string {
	var parts []string
	if size != nil && *size != "" {
		parts = append(parts, "Size: "+*size)
	}
	if color != nil && *color != "" {
		parts = append(parts, "Color: "+*color)
	}
	return strings.Join(parts, ", ")
}

func money(value decimal.Decimal) string {
	return value.StringFixed(2)
}
