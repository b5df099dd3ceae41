package bootstrap

import (
	"context"
	"log/slog"

	"github.com/bruceg7333/water-shop-api/internal/handler/middleware"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/pkg/jwt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)

// LoggerModule also installs the logger as the slog default, so packages logging through
// slog's top-level functions share its level and time format.
var LoggerModule = fx.Module("logger",
	fx.Provide(func(cfg config.Config) *slog.Logger {
		return middleware.NewLogger(cfg.Log)
	}),
)

var DBModule = fx.Module("db",
	fx.Provide(NewPool),
)

var JWTModule = fx.Module("jwt",
	fx.Provide(func(cfg config.Config) *jwt.Service {
		return jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.JWT.RefreshTokenDuration)
	}),
)

// NewPool connects eagerly so a wrong DSN fails the fx start instead of the first request.
func NewPool(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "host", cfg.DB.Host, "db", cfg.DB.DBName, "max_conns", pool.Config().MaxConns)

	lc.Append(fx.StopHook(cleanup))
	return pool, nil
}
