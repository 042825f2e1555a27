package bootstrap

import (
	"context"
	"log/slog"

	"hotel-reservation/internal/infra/cache"
	"hotel-reservation/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewCacheClient,
	),
)

// NewCacheClient does not ping: an unreachable Redis only trips the cache
// breaker, it never blocks startup.
func NewCacheClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) cache.Client {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled; reservation cache always misses")
		return cache.NoopClient{}
	}

	rdb := redis.NewClient(cache.NewRedisOptions(cfg.Redis))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return cache.NewRedisClient(rdb)
}
