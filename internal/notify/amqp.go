package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publisher is the part of *amqp.Channel the notifier uses.
type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

// alertEvent is the message body consumers of the alert queue receive.
type alertEvent struct {
	EventID    string        `json:"event_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	Alert      *AlertPayload `json:"alert"`
}

// AMQPNotifier implements Notifier by publishing each alert as a persistent
// JSON message, so downstream services (push, SMS, analytics) can react.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       publisher
	exchange string
	key      string

	mu sync.Mutex
}

// NewAMQPNotifier dials url and declares a durable queue. With an empty
// exchange, messages go through the default exchange routed by queue name.
func NewAMQPNotifier(url, exchange, queue string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declaring queue %q: %w", queue, err)
	}

	if exchange != "" {
		if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("binding queue %q to %q: %w", queue, exchange, err)
		}
	}

	n := newAMQPNotifier(ch, exchange, queue)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(ch publisher, exchange, key string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange, key: key}
}

// Send publishes the alert.
func (a *AMQPNotifier) Send(ctx context.Context, alert *AlertPayload) error {
	ev := alertEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Alert:      alert,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling alert event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    ev.OccurredAt,
		Type:         "price.alert",
		Body:         body,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ch.PublishWithContext(ctx, a.exchange, a.key, false, false, pub); err != nil {
		return fmt.Errorf("publishing alert event: %w", err)
	}
	return nil
}

// Close tears down the broker connection.
func (a *AMQPNotifier) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
