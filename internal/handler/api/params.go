package api

import (
	"context"
	"net/http"

	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/handler/middleware"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingActor = errs.New("actor missing from request context")

func requireActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, httperr.CodeInternal, errMissingActor, "Internal server error", nil)
		return shared.Actor{}, false
	}
	return actor, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// idempotencyKey returns nil when the optional header is absent.
func idempotencyKey(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.GetHeader(middleware.HeaderIdempotencyKey)
	if raw == "" {
		return nil, true
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid idempotency key format")
		return nil, false
	}
	return &key, true
}

type actorOrderFunc func(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*commands.OrderStatusResult, error)
