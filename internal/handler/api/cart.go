package api

import (
	"net/http"

	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartQueries queries.CartQueries
}

func NewCartHandler(cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{cartQueries: cartQueries}
}

// @Summary Get cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.CartView
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	v, err := h.cartQueries.Get(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
