package components

import (
	"github.com/bruceg7333/water-shop-api/internal/handler"
	"github.com/bruceg7333/water-shop-api/internal/handler/api"
	"github.com/bruceg7333/water-shop-api/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// HandlerModule owns the gin engine; the router registers middleware and routes on it
// during construction, so the engine is ready once the graph is built.
var HandlerModule = fx.Module("handler",
	fx.Provide(
		newEngine,
		middleware.NewAuthMiddleware,
	),
	handlerAPIModule,
	fx.Invoke(handler.NewRouter),
)

var handlerAPIModule = fx.Module("handler/api",
	fx.Provide(
		api.NewAuthHandler,
		api.NewOrderHandler,
		api.NewCouponHandler,
		api.NewPointsHandler,
		api.NewPaymentHandler,
		api.NewCartHandler,
	),
)

func newEngine() (*gin.Engine, error) {
	engine := gin.New()
	engine.ContextWithFallback = true
	// No proxy is trusted until deployment says otherwise; ClientIP is the socket peer.
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	return engine, nil
}
