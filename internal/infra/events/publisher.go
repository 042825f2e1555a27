package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Recorder interface {
	ObserveEvent(result string)
}

// AMQPPublisher sends reservation events as persistent JSON messages to a
// durable queue on the default exchange.
type AMQPPublisher struct {
	mu      sync.Mutex
	ch      Channel
	queue   string
	metrics Recorder
	logger  *slog.Logger
}

func NewAMQPPublisher(ch Channel, queue string, metrics Recorder, logger *slog.Logger) (*AMQPPublisher, error) {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, errs.Wrap(err, "failed to declare event queue")
	}
	return &AMQPPublisher{
		ch:      ch,
		queue:   queue,
		metrics: metrics,
		logger:  logger,
	}, nil
}

func (p *AMQPPublisher) PublishReservationCreated(ctx context.Context, event shared.ReservationCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.metrics.ObserveEvent("error")
		return errs.Wrap(err, "failed to marshal reservation event")
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     event.OccurredAt,
		MessageId:     event.ReservationID.String(),
		CorrelationId: event.CorrelationID,
		Type:          shared.EventReservationCreated,
		Body:          body,
	}

	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	p.mu.Lock()
	err = p.ch.PublishWithContext(pubCtx, "", p.queue, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		p.metrics.ObserveEvent("error")
		return errs.Wrap(err, "failed to publish reservation event")
	}

	p.metrics.ObserveEvent("published")
	correlation.Logger(ctx, p.logger).Debug("reservation event published",
		"reservation_id", event.ReservationID,
		"queue", p.queue)
	return nil
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct {
	metrics Recorder
}

func NewNoopPublisher(metrics Recorder) *NoopPublisher {
	return &NoopPublisher{metrics: metrics}
}

func (p *NoopPublisher) PublishReservationCreated(context.Context, shared.ReservationCreatedEvent) error {
	p.metrics.ObserveEvent("skipped")
	return nil
}
