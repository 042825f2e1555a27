package bootstrap

import (
	"log/slog"

	"hotel-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records which optional dependencies this process runs with.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"store_driver", cfg.Store.Driver,
		"redis_enabled", cfg.Redis.Enabled,
		"amqp_enabled", cfg.AMQP.Enabled,
		"ollama_base_url", cfg.Ollama.BaseURL,
		"breaker_postgres", cfg.Resilience.Postgres,
		"breaker_redis", cfg.Resilience.Redis,
		"breaker_ollama", cfg.Resilience.Ollama,
		"retry_max_attempts", cfg.Resilience.Retry.MaxAttempts)
}
