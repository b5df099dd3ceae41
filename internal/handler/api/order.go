package api

import (
	"net/http"

	reqdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/handler/middleware"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	checkout     commands.CheckoutCommands
	orders       commands.OrderCommands
	orderQueries queries.OrderQueries
}

func NewOrderHandler(checkout commands.CheckoutCommands, orders commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		checkout:     checkout,
		orders:       orders,
		orderQueries: orderQueries,
	}
}

// @Summary Checkout
// @Description Place an order from the given items. Replaying the same Idempotency-Key returns the original order.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed request"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), req.ToInput(actor.UserID, key))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	view, err := resdto.FromOrderView(result.Order)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header(middleware.HeaderIdempotentReplayed, "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.CheckoutResponse{Order: view, IsReplayed: result.IsReplayed})
}

// @Summary List my orders
// @Description Newest first, keyset paginated; archived orders are hidden
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending_payment | pending_shipment | pending_receipt | completed | canceled"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var q reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	items, next, err := h.orderQueries.ListByUser(c.Request.Context(), actor, q.ToFilters(), q.Cursor(), q.Limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderListResponse{Items: items, NextCursor: next})
}

// @Summary List all orders
// @Description Back-office list over every customer, archived orders included. Keyword matches order number, recipient, phone, address and account.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status"
// @Param keyword query string false "Search text"
// @Param start_date query string false "First day (YYYY-MM-DD)"
// @Param end_date query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/orders [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var q reqdto.AdminListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	items, next, err := h.orderQueries.ListAll(c.Request.Context(), actor, q.ToFilters(), q.Cursor(), q.Limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderListResponse{Items: items, NextCursor: next})
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	v, err := h.orderQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromOrderView(v)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Confirm receipt
// @Description Completes a delivered order and credits its purchase points
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/receipt [put]
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	h.statusChange(c, h.orders.ConfirmReceipt)
}

// @Summary Cancel order
// @Description Owner (or admin via /admin) cancels an unshipped order; stock and coupon are restored
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/cancel [put]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.statusChange(c, h.orders.Cancel)
}

// @Summary Mark delivered
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/orders/{id}/deliver [put]
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	h.statusChange(c, h.orders.MarkDelivered)
}

// @Summary Archive order
// @Description Hides a completed or canceled order from the owner's list
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 409 {object} httperr.Response
// @Router /orders/{id} [delete]
func (h *OrderHandler) Archive(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Archive(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Buy again
// @Description Adds the order's lines to the cart
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Router /orders/{id}/buy-again [post]
func (h *OrderHandler) BuyAgain(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.orders.BuyAgain(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) statusChange(c *gin.Context, fn actorOrderFunc) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderStatusResult(res))
}
