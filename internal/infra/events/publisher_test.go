//go:build unit

package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-reservation/internal/infra/events"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []amqp.Publishing
	keys       []string
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

type recorder struct {
	results []string
}

func (r *recorder) ObserveEvent(result string) {
	r.results = append(r.results, result)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() shared.ReservationCreatedEvent {
	key := "key-1"
	return shared.ReservationCreatedEvent{
		ReservationID:   uuid.New(),
		RoomType:        "junior",
		CheckIn:         time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
		NumGuests:       2,
		TotalPriceCents: 12000,
		IdempotencyKey:  &key,
		CorrelationID:   "corr-1",
		OccurredAt:      time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	rec := &recorder{}
	pub, err := events.NewAMQPPublisher(ch, "reservation.created", rec, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"reservation.created"}, ch.declared)

	event := sampleEvent()
	ctx := correlation.WithID(context.Background(), "corr-1")
	require.NoError(t, pub.PublishReservationCreated(ctx, event))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "reservation.created", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, event.ReservationID.String(), msg.MessageId)
	assert.Equal(t, "corr-1", msg.CorrelationId)
	assert.Equal(t, shared.EventReservationCreated, msg.Type)

	var decoded shared.ReservationCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event.ReservationID, decoded.ReservationID)
	assert.Equal(t, int64(12000), decoded.TotalPriceCents)
	assert.Equal(t, []string{"published"}, rec.results)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	brokerDown := errors.New("channel closed")
	ch := &fakeChannel{publishErr: brokerDown}
	rec := &recorder{}
	pub, err := events.NewAMQPPublisher(ch, "reservation.created", rec, discardLogger())
	require.NoError(t, err)

	err = pub.PublishReservationCreated(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, brokerDown)
	assert.Equal(t, []string{"error"}, rec.results)
}

func TestNewAMQPPublisher_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := events.NewAMQPPublisher(ch, "reservation.created", &recorder{}, discardLogger())
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	rec := &recorder{}
	pub := events.NewNoopPublisher(rec)
	assert.NoError(t, pub.PublishReservationCreated(context.Background(), sampleEvent()))
	assert.Equal(t, []string{"skipped"}, rec.results)
}
