package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/internal/orders"
	"github.com/maisonvela/vela-backend/pkg/enums"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendHTML(_ context.Context, to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func testConsumer(mail *fakeMailer) *Consumer {
	return &Consumer{
		mail: mail,
		logg: logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled")}),
	}
}

func TestProcessOrderCreatedSendsConfirmation(t *testing.T) {
	mail := &fakeMailer{}
	consumer := testConsumer(mail)

	payload, err := json.Marshal(sampleOrder(t))
	require.NoError(t, err)

	consumer.Process(context.Background(), events.TypeOrderCreated, "m1", payload)

	require.Len(t, mail.sent, 1)
	require.Equal(t, "ada@example.com", mail.sent[0].To)
	require.Equal(t, "Order Confirmation - Order #A1B2C3D4", mail.sent[0].Subject)
	require.Contains(t, mail.sent[0].HTML, "Silk Scarf")
}

func TestProcessStatusChangedSendsUpdate(t *testing.T) {
	mail := &fakeMailer{}
	consumer := testConsumer(mail)

	payload, err := json.Marshal(orders.StatusChangedEvent{
		Order:     sampleOrder(t),
		NewStatus: enums.OrderStatusShipped,
	})
	require.NoError(t, err)

	consumer.Process(context.Background(), events.TypeOrderStatusChanged, "m2", payload)

	require.Len(t, mail.sent, 1)
	require.Equal(t, "Order Shipped - Order #A1B2C3D4", mail.sent[0].Subject)
}

func TestProcessSkipsUnknownEvents(t *testing.T) {
	mail := &fakeMailer{}
	consumer := testConsumer(mail)

	consumer.Process(context.Background(), events.TypeProductChanged, "m3", []byte(`{}`))
	require.Empty(t, mail.sent)
}

func TestProcessSwallowsBadPayloads(t *testing.T) {
	mail := &fakeMailer{}
	consumer := testConsumer(mail)

	consumer.Process(context.Background(), events.TypeOrderCreated, "m4", []byte(`not json`))
	require.Empty(t, mail.sent)
}

func TestProcessSkipsOrdersWithoutEmail(t *testing.T) {
	mail := &fakeMailer{}
	consumer := testConsumer(mail)

	order := sampleOrder(t)
	order.Shipping.Email = ""
	payload, err := json.Marshal(order)
	require.NoError(t, err)

	consumer.Process(context.Background(), events.TypeOrderCreated, "m5", payload)
	require.Empty(t, mail.sent)
}

func TestProcessSwallowsSendFailures(t *testing.T) {
	mail := &fakeMailer{err: errors.New("smtp down")}
	consumer := testConsumer(mail)

	payload, err := json.Marshal(sampleOrder(t))
	require.NoError(t, err)

	// A failed send must not panic or propagate.
	consumer.Process(context.Background(), events.TypeOrderCreated, "m6", payload)
	require.Empty(t, mail.sent)
}
