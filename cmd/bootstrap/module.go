package bootstrap

import (
	"hotel-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	ResilienceModule,
	DBModule,
	RedisModule,
	AMQPModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
