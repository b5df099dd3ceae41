package api

import (
	"net/http"

	reqdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	points        commands.PointsCommands
	pointsQueries queries.PointsQueries
}

func NewPointsHandler(points commands.PointsCommands, pointsQueries queries.PointsQueries) *PointsHandler {
	return &PointsHandler{
		points:        points,
		pointsQueries: pointsQueries,
	}
}

// @Summary Points balance
// @Tags points
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.PointsBalanceView
// @Router /points/balance [get]
func (h *PointsHandler) Balance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	v, err := h.pointsQueries.Balance(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary Points history
// @Tags points
// @Produce json
// @Security BearerAuth
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} resdto.PointsEntriesResponse
// @Failure 400 {object} httperr.Response
// @Router /points/entries [get]
func (h *PointsHandler) ListEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var q reqdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	items, next, err := h.pointsQueries.ListEntries(c.Request.Context(), actor.UserID, q.Cursor(), q.Limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.PointsEntriesResponse{Items: items, NextCursor: next})
}

// @Summary Record a points movement
// @Description Debits are clamped to the current balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PointsMovementRequest true "Movement"
// @Success 201 {object} resdto.PointsEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/points/entries [post]
func (h *PointsHandler) CreateEntry(c *gin.Context) {
	var req reqdto.PointsMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	move := h.points.Credit
	if req.IsDebit() {
		move = h.points.Debit
	}
	res, err := move(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPointsEntryResult(res))
}

// @Summary Grant purchase points for a completed order
// @Description Idempotent; a second call reports granted=false
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.GrantPointsResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/orders/{id}/grant-points [post]
func (h *PointsHandler) GrantForOrder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.points.CreditForCompletedOrder(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.GrantPointsResponse{Granted: res != nil, Entry: resdto.FromPointsEntryResult(res)})
}
