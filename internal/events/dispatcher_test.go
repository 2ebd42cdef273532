package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/stretchr/testify/require"

	"github.com/maisonvela/vela-backend/pkg/logger"
)

type fakeResult struct {
	err error
}

func (r *fakeResult) Get(context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "msg-1", nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []*gcppubsub.Message
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) PublishResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return &fakeResult{err: p.err}
}

func (p *fakePublisher) published() []*gcppubsub.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*gcppubsub.Message(nil), p.messages...)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled")})
}

func TestDispatcherPublishesOrderEvent(t *testing.T) {
	orders := &fakePublisher{}
	d, err := NewDispatcherWithPublishers(testLogger(), orders, nil)
	require.NoError(t, err)

	payload := map[string]string{"order_id": "abc"}
	d.OrderEvent(context.Background(), TypeOrderCreated, "abc", payload)
	d.Wait()

	msgs := orders.published()
	require.Len(t, msgs, 1)
	require.Equal(t, TypeOrderCreated, msgs[0].Attributes["event_type"])
	require.Equal(t, "abc", msgs[0].Attributes["aggregate_id"])

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(msgs[0].Data, &decoded))
	require.Equal(t, "abc", decoded["order_id"])
}

func TestDispatcherSwallowsPublishFailure(t *testing.T) {
	catalog := &fakePublisher{err: errors.New("broker down")}
	d, err := NewDispatcherWithPublishers(testLogger(), nil, catalog)
	require.NoError(t, err)

	d.CatalogEvent(context.Background(), TypeProductChanged, "p1", map[string]string{"id": "p1"})
	d.Wait()

	require.Len(t, catalog.published(), 1)
}

func TestDispatcherDropsWhenPublisherMissing(t *testing.T) {
	d, err := NewDispatcherWithPublishers(testLogger(), nil, nil)
	require.NoError(t, err)

	d.OrderEvent(context.Background(), TypeOrderCreated, "abc", nil)
	d.Wait()
}

func TestDispatcherSurvivesCanceledRequestContext(t *testing.T) {
	orders := &fakePublisher{}
	d, err := NewDispatcherWithPublishers(testLogger(), orders, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.OrderEvent(ctx, TypeOrderStatusChanged, "abc", map[string]string{"status": "shipped"})
	d.Wait()

	require.Len(t, orders.published(), 1)
}
