package components

import (
	"log/slog"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/infra/intent"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/metrics"
	"hotel-reservation/internal/pkg/resilience"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewStandardPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	NewCommitMetrics,
	fx.Annotate(
		NewIntentParser,
		fx.As(new(queries.IntentParser)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewRoomSearchQueries,
	),
)

func NewIntentParser(cfg config.Config, breakers resilience.Breakers, logger *slog.Logger) *intent.OllamaParser {
	return intent.NewOllamaParser(cfg.Ollama.BaseURL, cfg.Ollama.Model, breakers.Ollama, logger)
}

func NewCommitMetrics(m *metrics.Metrics) commands.MetricsRecorder {
	return m
}
