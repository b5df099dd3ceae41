package components

import (
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/infra/readstore"
	"github.com/bruceg7333/water-shop-api/internal/infra/uow"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewRepositories,
		uow.NewPostgresUoW,
		// Repositories used outside a transaction
		func(r *uow.Repositories) shared.IdempotencyRepository { return r.Idempotency },
		func(r *uow.Repositories) shared.UserRepository { return r.Users },
		func(r *uow.Repositories) commands.OrderNumberLookup { return r.Orders },
		// Read side
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
		fx.Annotate(
			readstore.NewPointsReadStore,
			fx.As(new(queries.PointsReadStore)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
