package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/bruceg7333/water-shop-api/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware applies the configured policy. Browser clients always need to send an
// idempotency key with checkout and read back the replay marker and request id, so those
// headers are added when the configuration leaves them out.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, HeaderIdempotencyKey, HeaderRequestID),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, HeaderIdempotentReplayed, HeaderRequestID),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

func withHeaders(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		canonical := http.CanonicalHeaderKey(h)
		if !slices.ContainsFunc(out, func(s string) bool { return http.CanonicalHeaderKey(s) == canonical }) {
			out = append(out, h)
		}
	}
	return out
}
