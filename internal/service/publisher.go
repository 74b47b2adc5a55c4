// Package service holds outbound integrations used by the workflow.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/queue"
)

// Publisher sends reservation events to a durable RabbitMQ queue.  Each
// call dials its own connection so a broker outage never leaves a
// broken channel behind; failures are logged and returned and the
// workflow ignores them.
type Publisher struct {
	url   string
	queue string
	log   *slog.Logger
	dial  func(url string) (channel, func(), error)
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// NewPublisher returns a Publisher for the given broker URL and queue.
func NewPublisher(url, queueName string, log *slog.Logger) *Publisher {
	return &Publisher{url: url, queue: queueName, log: log, dial: dialAMQP}
}

func dialAMQP(url string) (channel, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, func() { _ = ch.Close(); _ = conn.Close() }, nil
}

// Publish implements booking.EventPublisher.  Messages are persistent
// JSON with the event id as MessageId.
func (p *Publisher) Publish(ctx context.Context, ev booking.Event) error {
	msg := queue.NewReservationEvent(ev)
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, closeFn, err := p.dial(p.url)
	if err != nil {
		p.log.WarnContext(ctx, "rabbitmq: dial failed", "err", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer closeFn()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.WarnContext(ctx, "rabbitmq: queue declare failed", "queue", p.queue, "err", err)
		return fmt.Errorf("queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.EventID,
		Type:         msg.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.WarnContext(ctx, "rabbitmq: publish failed", "err", err)
		return fmt.Errorf("publish: %w", err)
	}
	p.log.DebugContext(ctx, "event published", "type", msg.Type, "event_id", msg.EventID)
	return nil
}
