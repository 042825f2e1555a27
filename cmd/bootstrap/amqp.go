package bootstrap

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/infra/events"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/metrics"
	"hotel-reservation/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher falls back to dropping events when the broker is disabled
// or unreachable; publishing is best effort.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) shared.EventPublisher {
	if !cfg.AMQP.Enabled {
		return events.NewNoopPublisher(m)
	}

	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		logger.Error("amqp dial failed; reservation events disabled", "error", err)
		return events.NewNoopPublisher(m)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		logger.Error("amqp channel open failed; reservation events disabled", "error", err)
		return events.NewNoopPublisher(m)
	}

	pub, err := events.NewAMQPPublisher(ch, cfg.AMQP.Queue, m, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		logger.Error("amqp queue declare failed; reservation events disabled", "error", err)
		return events.NewNoopPublisher(m)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			_ = ch.Close()
			return conn.Close()
		},
	})
	return pub
}
