package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

const publishTimeout = 10 * time.Second

// Event type names carried in message attributes. Consumers route on these.
const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeProductChanged     = "product.changed"
	TypeCategoryChanged    = "category.changed"
)

// Publisher sends messages to one topic.
type Publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) PublishResult
}

// PublishResult resolves to a server-assigned message ID.
type PublishResult interface {
	Get(ctx context.Context) (string, error)
}

type pubsubClient interface {
	OrdersPublisher() *gcppubsub.Publisher
	CatalogPublisher() *gcppubsub.Publisher
}

// Dispatcher publishes domain events best-effort: failures are logged and
// never surface to the caller, and callers are never blocked on delivery.
type Dispatcher struct {
	logg    *logger.Logger
	orders  Publisher
	catalog Publisher
	wg      sync.WaitGroup
}

// NewDispatcher wires the dispatcher to the orders and catalog topics. Either
// publisher may be nil; events for that topic are then dropped with a warning.
func NewDispatcher(logg *logger.Logger, client pubsubClient) (*Dispatcher, error) {
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	d := &Dispatcher{logg: logg}
	if client != nil {
		d.orders = wrapPublisher(client.OrdersPublisher())
		d.catalog = wrapPublisher(client.CatalogPublisher())
	}
	return d, nil
}

// NewDispatcherWithPublishers is the constructor used by tests.
func NewDispatcherWithPublishers(logg *logger.Logger, orders, catalog Publisher) (*Dispatcher, error) {
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Dispatcher{logg: logg, orders: orders, catalog: catalog}, nil
}

// OrderEvent publishes to the orders topic.
func (d *Dispatcher) OrderEvent(ctx context.Context, eventType, aggregateID string, payload any) {
	d.dispatch(ctx, d.orders, "orders", eventType, aggregateID, payload)
}

// CatalogEvent publishes to the catalog topic.
func (d *Dispatcher) CatalogEvent(ctx context.Context, eventType, aggregateID string, payload any) {
	d.dispatch(ctx, d.catalog, "catalog", eventType, aggregateID, payload)
}

// Wait blocks until all in-flight publishes settle. Used during shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, pub Publisher, topic, eventType, aggregateID string, payload any) {
	fields := map[string]any{
		"topic":        topic,
		"event_type":   eventType,
		"aggregate_id": aggregateID,
	}
	logCtx := d.logg.WithFields(context.WithoutCancel(ctx), fields)

	if pub == nil {
		d.logg.Warn(logCtx, "event dropped: publisher not configured")
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		d.logg.Error(logCtx, "event dropped: marshal payload", err)
		return
	}

	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type":   eventType,
			"aggregate_id": aggregateID,
			"occurred_at":  time.Now().UTC().Format(time.RFC3339Nano),
		},
	}

	// Detached from the request context so a finished request does not
	// cancel the publish.
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		result := pub.Publish(publishCtx, msg)
		if result == nil {
			d.logg.Warn(logCtx, "event dropped: nil publish result")
			return
		}
		if _, err := result.Get(publishCtx); err != nil {
			d.logg.Error(logCtx, fmt.Sprintf("publish %s failed", eventType), err)
		}
	}()
}

func wrapPublisher(p *gcppubsub.Publisher) Publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) PublishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
