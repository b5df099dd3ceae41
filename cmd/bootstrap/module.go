package bootstrap

import (
	"github.com/bruceg7333/water-shop-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is the full application graph. The e2e harness assembles the same modules but
// swaps ConfigModule and DBModule for a container-backed pool.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.PaymentModule,
	components.UseCaseModule,
	components.HandlerModule,
)
