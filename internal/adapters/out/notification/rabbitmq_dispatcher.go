// Package notification delivers outbox messages to the notification channel.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the fanout exchange notification consumers bind their queues to.
const DefaultExchange = "notifications_fanout"

const publishTimeout = 5 * time.Second

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// envelope is the message body consumers receive. ID is stable across redeliveries.
type envelope struct {
	ID          string          `json:"id"`
	RecipientID string          `json:"recipientId"`
	Kind        string          `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// RabbitMQDispatcher publishes every notification to a durable fanout exchange as a
// persistent JSON message.
type RabbitMQDispatcher struct {
	conn     *amqp.Connection
	channel  publisher
	exchange string
}

// NewRabbitMQDispatcher dials url and declares the exchange.
func NewRabbitMQDispatcher(url, exchange string) (*RabbitMQDispatcher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQDispatcher{conn: conn, channel: ch, exchange: exchange}, nil
}

func newRabbitMQDispatcher(channel publisher, exchange string) *RabbitMQDispatcher {
	return &RabbitMQDispatcher{channel: channel, exchange: exchange}
}

func (d *RabbitMQDispatcher) Notify(ctx context.Context, n ports.Notification) error {
	body, err := json.Marshal(envelope{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Kind:        n.Kind,
		Payload:     n.Payload,
		CreatedAt:   n.CreatedAt,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = d.channel.PublishWithContext(ctx,
		d.exchange, // exchange
		n.Kind,     // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			MessageId:    n.ID.String(),
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         n.Kind,
			Body:         body,
			Timestamp:    n.CreatedAt,
		})
	if err != nil {
		return fmt.Errorf("publish %s notification %s: %w", n.Kind, n.ID, err)
	}
	return nil
}

// Close closes the connection opened by NewRabbitMQDispatcher.
func (d *RabbitMQDispatcher) Close() error {
	if d.conn == nil {
		return nil
	}
	if err := d.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
