package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/bruceg7333/water-shop-api/internal/handler/api"
	"github.com/bruceg7333/water-shop-api/internal/handler/middleware"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Auth    *api.AuthHandler
	Order   *api.OrderHandler
	Coupon  *api.CouponHandler
	Points  *api.PointsHandler
	Payment *api.PaymentHandler
	Cart    *api.CartHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	adminOnly := []gin.HandlerFunc{authMiddleware.RequireAdmin()}

	apiGroup := engine.Group("/api")

	addRoutes(apiGroup.Group("/auth"), []route{
		{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
		{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
		{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout, Mw: []gin.HandlerFunc{requireAuth}},
		{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
	})

	// the provider calls back unauthenticated; the notification signature is checked instead
	addRoutes(apiGroup.Group("/payments"), []route{
		{Method: http.MethodPost, Path: "/callback", Handler: h.Payment.Callback},
		{Method: http.MethodPost, Path: "", Handler: h.Payment.Create, Mw: []gin.HandlerFunc{requireAuth}},
		{Method: http.MethodGet, Path: "/:orderId/status", Handler: h.Payment.Status, Mw: []gin.HandlerFunc{requireAuth}},
	})

	authed := apiGroup.Group("", requireAuth)

	addRoutes(authed.Group("/orders"), []route{
		{Method: http.MethodPost, Path: "", Handler: h.Order.Checkout},
		{Method: http.MethodGet, Path: "", Handler: h.Order.List},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
		{Method: http.MethodDelete, Path: "/:id", Handler: h.Order.Archive},
		{Method: http.MethodPut, Path: "/:id/receipt", Handler: h.Order.ConfirmReceipt},
		{Method: http.MethodPut, Path: "/:id/cancel", Handler: h.Order.Cancel},
		{Method: http.MethodPost, Path: "/:id/buy-again", Handler: h.Order.BuyAgain},
	})

	addRoutes(authed.Group("/coupons"), []route{
		{Method: http.MethodPost, Path: "/claim", Handler: h.Coupon.Claim},
		{Method: http.MethodGet, Path: "/me", Handler: h.Coupon.ListMine},
		{Method: http.MethodGet, Path: "/available", Handler: h.Coupon.ListAvailable},
		{Method: http.MethodGet, Path: "/verify/:couponId", Handler: h.Coupon.Verify},
	})

	addRoutes(authed.Group("/points"), []route{
		{Method: http.MethodGet, Path: "/balance", Handler: h.Points.Balance},
		{Method: http.MethodGet, Path: "/entries", Handler: h.Points.ListEntries},
	})

	addRoutes(authed.Group("/cart"), []route{
		{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
	})

	addRoutes(authed.Group("/admin"), []route{
		{Method: http.MethodGet, Path: "/orders", Handler: h.Order.ListAll, Mw: adminOnly},
		{Method: http.MethodPut, Path: "/orders/:id/deliver", Handler: h.Order.MarkDelivered, Mw: adminOnly},
		{Method: http.MethodPut, Path: "/orders/:id/cancel", Handler: h.Order.Cancel, Mw: adminOnly},
		{Method: http.MethodPut, Path: "/orders/:id/pay", Handler: h.Payment.MarkPaid, Mw: adminOnly},
		{Method: http.MethodPost, Path: "/orders/:id/grant-points", Handler: h.Points.GrantForOrder, Mw: adminOnly},
		{Method: http.MethodPost, Path: "/coupons", Handler: h.Coupon.Create, Mw: adminOnly},
		{Method: http.MethodPost, Path: "/coupons/:couponId/distribute", Handler: h.Coupon.Distribute, Mw: adminOnly},
		{Method: http.MethodPost, Path: "/points/entries", Handler: h.Points.CreateEntry, Mw: adminOnly},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(slices.Clone(r.Mw), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
