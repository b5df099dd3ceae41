package api

import (
	"net/http"

	reqdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments commands.PaymentCommands
}

func NewPaymentHandler(payments commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary Create payment
// @Description Returns the parameters the client passes to the payment SDK
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePaymentRequest true "Order to pay"
// @Success 200 {object} shared.PrepayParams
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	params, err := h.payments.CreatePayment(c.Request.Context(), actor, req.OrderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

// @Summary Payment gateway callback
// @Description Signed notification from the payment provider
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentCallbackRequest true "Notification"
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	if err := h.payments.HandleCallback(c.Request.Context(), req.ToNotification()); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
}

// @Summary Sync payment status
// @Description Queries the gateway and marks the order paid when the trade succeeded
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.PaymentStatusResponse
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/{orderId}/status [get]
func (h *PaymentHandler) Status(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "orderId")
	if !ok {
		return
	}

	res, err := h.payments.SyncStatus(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentStatusResult(res))
}

// @Summary Mark cash-on-delivery order paid
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 409 {object} httperr.Response
// @Router /admin/orders/{id}/pay [put]
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	res, err := h.payments.MarkCashCollected(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderStatusResult(res))
}
