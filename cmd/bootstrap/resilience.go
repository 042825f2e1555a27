package bootstrap

import (
	"log/slog"

	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/metrics"
	"hotel-reservation/internal/pkg/resilience"

	"go.uber.org/fx"
)

var ResilienceModule = fx.Module("resilience",
	fx.Provide(
		metrics.New,
		NewBreakers,
		NewRegistry,
		NewRetrier,
	),
)

func NewBreakers(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) resilience.Breakers {
	observe := resilience.WithStateListener(func(name string, from, to resilience.State) {
		m.ObserveBreakerTransition(name, from.String(), to.String(), int(to))
	})
	build := func(name string, bc config.BreakerConfig) *resilience.Breaker {
		return resilience.NewBreaker(name, resilience.Settings{
			Threshold: bc.Threshold,
			Timeout:   bc.Timeout,
			Cooldown:  bc.Cooldown,
		}, resilience.WithLogger(logger), observe)
	}

	return resilience.Breakers{
		Postgres: build(resilience.BreakerPostgres, cfg.Resilience.Postgres),
		Redis:    build(resilience.BreakerRedis, cfg.Resilience.Redis),
		Ollama:   build(resilience.BreakerOllama, cfg.Resilience.Ollama),
	}
}

func NewRegistry(b resilience.Breakers) *resilience.Registry {
	return resilience.NewRegistry(b.Postgres, b.Redis, b.Ollama)
}

func NewRetrier(cfg config.Config, logger *slog.Logger) *resilience.Retrier {
	return resilience.NewRetrier(resilience.RetryPolicy{
		MaxAttempts: cfg.Resilience.Retry.MaxAttempts,
		BaseDelay:   cfg.Resilience.Retry.BaseDelay,
		Jitter:      cfg.Resilience.Retry.Jitter,
	}, resilience.WithRetryLogger(logger))
}
