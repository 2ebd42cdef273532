package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/internal/orders"
	"github.com/maisonvela/vela-backend/pkg/logger"
	"github.com/maisonvela/vela-backend/pkg/mailer"
)

// Consumer watches order events and emails customers about them. Email
// delivery is best effort: a failed send is logged and the message acked
// so a flaky SMTP relay cannot wedge the subscription.
type Consumer struct {
	mail         mailer.Mailer
	subscription *pubsub.Subscriber
	logg         *logger.Logger
}

// NewConsumer builds an order notification consumer.
func NewConsumer(mail mailer.Mailer, subscription *pubsub.Subscriber, logg *logger.Logger) (*Consumer, error) {
	if mail == nil {
		return nil, fmt.Errorf("notifications mailer required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("orders subscription required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{mail: mail, subscription: subscription, logg: logg}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		c.Process(ctx, msg.Attributes["event_type"], msg.ID, msg.Data)
		msg.Ack()
	})
}

// Process handles one decoded message. Exposed for the worker's tests.
func (c *Consumer) Process(ctx context.Context, eventType, messageID string, data []byte) {
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": messageID,
		"event_type": eventType,
	})

	switch eventType {
	case events.TypeOrderCreated:
		c.handleOrderCreated(logCtx, data)
	case events.TypeOrderStatusChanged:
		c.handleStatusChanged(logCtx, data)
	default:
		c.logg.Info(logCtx, "skipping non-notification event")
	}
}

func (c *Consumer) handleOrderCreated(ctx context.Context, data []byte) {
	var order orders.OrderDTO
	if err := json.Unmarshal(data, &order); err != nil {
		c.logg.Error(ctx, "failed to decode order payload", err)
		return
	}
	logCtx := c.logg.WithOrderID(ctx, order.ID.String())

	if order.Shipping.Email == "" {
		c.logg.Warn(logCtx, "order has no customer email, skipping confirmation")
		return
	}

	subject, html, err := BuildOrderConfirmation(order)
	if err != nil {
		c.logg.Error(logCtx, "failed to render order confirmation", err)
		return
	}
	if err := c.mail.SendHTML(ctx, order.Shipping.Email, subject, html); err != nil {
		c.logg.Error(logCtx, "failed to send order confirmation", err)
		return
	}
	c.logg.Info(logCtx, "order confirmation sent")
}

func (c *Consumer) handleStatusChanged(ctx context.Context, data []byte) {
	var event orders.StatusChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		c.logg.Error(ctx, "failed to decode status change payload", err)
		return
	}
	logCtx := c.logg.WithFields(c.logg.WithOrderID(ctx, event.Order.ID.String()), map[string]any{
		"new_status": string(event.NewStatus),
	})

	if event.Order.Shipping.Email == "" {
		c.logg.Warn(logCtx, "order has no customer email, skipping status update")
		return
	}

	subject, html, err := BuildStatusUpdate(event)
	if err != nil {
		c.logg.Error(logCtx, "failed to render status update", err)
		return
	}
	if err := c.mail.SendHTML(ctx, event.Order.Shipping.Email, subject, html); err != nil {
		c.logg.Error(logCtx, "failed to send status update", err)
		return
	}
	c.logg.Info(logCtx, "status update sent")
}
