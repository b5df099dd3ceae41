package components

import (
	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/usecase"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) (clock.Clock, error) {
		return clock.NewShopClock(cfg.Order.TimeZone)
	},
	func(cfg config.Config) order.ShippingFeeCalculator {
		return order.NewFlatShippingFee(cfg.Order.ShippingFee, cfg.Order.FreeShippingThreshold)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		func(
			uow shared.UnitOfWork,
			idempotency shared.IdempotencyRepository,
			orderQueries queries.OrderQueries,
			shippingFee order.ShippingFeeCalculator,
			cfg config.Config,
			clk clock.Clock,
		) commands.CheckoutCommands {
			return commands.NewCheckoutUseCase(uow, idempotency, orderQueries, shippingFee, cfg.Order.IdempotencyTTL, clk)
		},
		func(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock) commands.OrderCommands {
			return commands.NewOrderUseCase(uow, cfg.Points.PerUnit, clk)
		},
		func(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock) commands.PointsCommands {
			return commands.NewPointsUseCase(uow, cfg.Points.PerUnit, clk)
		},
		commands.NewCouponUseCase,
		func(
			uow shared.UnitOfWork,
			gateway shared.PaymentGateway,
			orderIDs commands.OrderNumberLookup,
			orders commands.OrderCommands,
			orderQueries queries.OrderQueries,
			cfg config.Config,
		) commands.PaymentCommands {
			return commands.NewPaymentUseCase(uow, gateway, orderIDs, orders, orderQueries, cfg.Payment.CallbackSecret)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewOrderQueries,
		queries.NewCouponQueries,
		queries.NewPointsQueries,
		queries.NewCartQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
