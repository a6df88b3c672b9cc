package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

type published struct {
	exchange string
	msg      amqp.Publishing
}

type fakeChannel struct {
	deliveries chan amqp.Delivery
	closeChan  chan *amqp.Error
	exchanges  []string
	published  []published
	closed     bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		deliveries: make(chan amqp.Delivery, 8),
		closeChan:  make(chan *amqp.Error, 1),
	}
}

func (ch *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	ch.exchanges = append(ch.exchanges, name+":"+kind)
	return nil
}

func (ch *fakeChannel) QueueDeclare(string, bool, bool, bool, bool, amqp.Table) (Queue, error) {
	return Queue{Name: "amq.gen-test"}, nil
}

func (ch *fakeChannel) QueueBind(string, string, string, bool, amqp.Table) error { return nil }

func (ch *fakeChannel) Publish(exchange, _ string, _, _ bool, msg amqp.Publishing) error {
	ch.published = append(ch.published, published{exchange: exchange, msg: msg})
	return nil
}

func (ch *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return ch.deliveries, nil
}

func (ch *fakeChannel) Close() error {
	ch.closed = true
	return nil
}

func (ch *fakeChannel) NotifyClose() <-chan *amqp.Error { return ch.closeChan }

type fakeConnection struct {
	channel *fakeChannel
	chanErr error
}

func (c *fakeConnection) Channel() (Channel, error) {
	if c.chanErr != nil {
		return nil, c.chanErr
	}
	return c.channel, nil
}

func (c *fakeConnection) Close() error   { return nil }
func (c *fakeConnection) IsClosed() bool { return false }

func eventBody(t *testing.T, id int) []byte {
	t.Helper()
	body, err := json.Marshal(interfaces.OrderEventMessage{
		Event: "order-created",
		Order: domain.Order{ID: id, CustomerID: "c1", Status: domain.StatusPending},
	})
	require.NoError(t, err)
	return body
}

func TestConsumeSurvivesMalformedMessage(t *testing.T) {
	ch := newFakeChannel()
	ch.deliveries <- amqp.Delivery{Body: []byte(`{not json`)}
	ch.deliveries <- amqp.Delivery{Body: eventBody(t, 7)}
	close(ch.deliveries)

	c := &consumer{conn: &fakeConnection{channel: ch}}

	var handled []interfaces.OrderEventMessage
	handler := func(_ context.Context, body []byte) error {
		var msg interfaces.OrderEventMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return err
		}
		handled = append(handled, msg)
		return nil
	}

	// The closed delivery channel ends this pass; the outer loop reconnects.
	err := c.consumeWithReconnect(context.Background(), handler)
	require.Error(t, err)

	require.Len(t, handled, 1, "the message after the malformed one must still be handled")
	assert.Equal(t, 7, handled[0].Order.ID)
	assert.True(t, ch.closed)
}

func TestConsumeReturnsOnChannelClose(t *testing.T) {
	ch := newFakeChannel()
	ch.closeChan <- &amqp.Error{Code: amqp.ChannelError, Reason: "server closed channel"}

	c := &consumer{conn: &fakeConnection{channel: ch}}

	err := c.consumeWithReconnect(context.Background(), func(context.Context, []byte) error { return nil })
	assert.ErrorContains(t, err, "channel closed")
}

func TestConsumeStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &consumer{conn: &fakeConnection{channel: newFakeChannel()}}

	err := c.ConsumeNotifications(ctx, func(context.Context, []byte) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsumeChannelOpenFailure(t *testing.T) {
	c := &consumer{conn: &fakeConnection{chanErr: errors.New("connection is closed")}}

	err := c.consumeWithReconnect(context.Background(), nil)
	assert.ErrorContains(t, err, "failed to open channel")
}
