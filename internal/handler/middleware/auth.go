package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/pkg/cookie"
	"github.com/bruceg7333/water-shop-api/internal/usecase"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey = "user_id"
	ctxActorKey  = "actor"

	bearerPrefix = "Bearer "
)

// AuthMiddleware resolves the caller of a request into a shared.Actor. Mini-program clients
// send a bearer header; the admin console relies on the access token cookie.
type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokenValidator: tokenValidator}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			deny(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("rejected access token",
				"request_id", GetRequestID(c),
				"path", c.FullPath(),
				"error", err.Error())
			deny(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, actor.UserID)
		c.Set(ctxActorKey, actor)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.Internal())
			return
		}
		if !actor.IsAdmin() {
			deny(c, http.StatusForbidden, "ADMIN_REQUIRED", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, status int, code, msg string) {
	resp := httperr.Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	c.AbortWithStatusJSON(status, resp)
}

func accessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(header[len(bearerPrefix):]); token != "" {
			return token
		}
	}
	return cookie.AccessToken(c.Request)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Value(ctxUserIDKey).(uuid.UUID)
	return id, ok
}

func GetActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := c.Value(ctxActorKey).(shared.Actor)
	return actor, ok
}
