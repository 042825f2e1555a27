package components

import (
	"log/slog"

	"hotel-reservation/internal/infra/cache"
	"hotel-reservation/internal/infra/guarded"
	"hotel-reservation/internal/infra/memstore"
	"hotel-reservation/internal/infra/pgsql"
	"hotel-reservation/internal/infra/repository"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/metrics"
	"hotel-reservation/internal/pkg/resilience"
	"hotel-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			NewReservationStore,
			fx.As(new(shared.ReservationStore)),
		),
		fx.Annotate(
			NewReservationCache,
			fx.As(new(shared.ReservationCache)),
		),
	),
)

// NewReservationStore picks the backing store by driver and always wraps it
// in the postgres breaker and the retrier.
func NewReservationStore(
	cfg config.Config,
	pool *pgxpool.Pool,
	breakers resilience.Breakers,
	retrier *resilience.Retrier,
	logger *slog.Logger,
) *guarded.ReservationStore {
	var inner shared.ReservationStore
	if cfg.Store.Driver == config.StoreDriverMemory || pool == nil {
		inner = memstore.NewReservationStore(logger)
	} else {
		inner = repository.NewReservationRepository(pgsql.NewQueries(), pool, logger)
	}
	return guarded.NewReservationStore(inner, breakers.Postgres, retrier)
}

func NewReservationCache(
	cfg config.Config,
	client cache.Client,
	breakers resilience.Breakers,
	m *metrics.Metrics,
	logger *slog.Logger,
) *cache.ReservationCache {
	return cache.NewReservationCache(client, breakers.Redis, cfg.Cache.TTL, cfg.Cache.Prefix, m, logger)
}
