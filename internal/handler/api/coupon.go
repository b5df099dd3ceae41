package api

import (
	"log/slog"
	"net/http"

	reqdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	coupons       commands.CouponCommands
	couponQueries queries.CouponQueries
}

func NewCouponHandler(coupons commands.CouponCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		coupons:       coupons,
		couponQueries: couponQueries,
	}
}

// @Summary Claim coupon by code
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ClaimCouponRequest true "Coupon code"
// @Success 201 {object} resdto.ClaimResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /coupons/claim [post]
func (h *CouponHandler) Claim(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.ClaimCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	res, err := h.coupons.ClaimByCode(c.Request.Context(), actor.UserID, req.Code)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromClaimResult(res))
}

// @Summary List my coupons
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param status query string false "available | used | expired"
// @Success 200 {object} resdto.MyCouponsResponse
// @Failure 400 {object} httperr.Response
// @Router /coupons/me [get]
func (h *CouponHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var q reqdto.ListMyCouponsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	items, err := h.couponQueries.ListMine(c.Request.Context(), actor.UserID, q.ToStatus())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MyCouponsResponse{Items: items})
}

// @Summary List claimable coupons
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AvailableCouponsResponse
// @Router /coupons/available [get]
func (h *CouponHandler) ListAvailable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	items, err := h.couponQueries.ListAvailable(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailableCouponsResponse{Items: items})
}

// @Summary Create coupon
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon"
// @Success 201 {object} resdto.CreateCouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	id, err := h.coupons.CreateCoupon(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateCouponResponse{ID: id})
}

// @Summary Preview a claimed coupon
// @Description Checks the caller's unused claim against a subtotal and returns the discount checkout would apply. Nothing is redeemed.
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param couponId path string true "Coupon ID"
// @Param subtotal query string true "Items subtotal"
// @Success 200 {object} resdto.CouponPreviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /coupons/verify/{couponId} [get]
func (h *CouponHandler) Verify(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	couponID, ok := uuidParam(c, "couponId")
	if !ok {
		return
	}

	var q reqdto.VerifyCouponQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	subtotal, err := q.Amount()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	preview, err := h.coupons.Verify(c.Request.Context(), actor.UserID, couponID, subtotal)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponPreview(preview))
}

// @Summary Distribute coupon
// @Description Claims the coupon for each listed user. Per-user refusals are reported in the body.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param couponId path string true "Coupon ID"
// @Param request body reqdto.DistributeCouponRequest true "Recipients"
// @Success 200 {object} resdto.DistributionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/coupons/{couponId}/distribute [post]
func (h *CouponHandler) Distribute(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	couponID, ok := uuidParam(c, "couponId")
	if !ok {
		return
	}

	var req reqdto.DistributeCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	results, err := h.coupons.Distribute(c.Request.Context(), actor, couponID, req.UserIDs)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := resdto.DistributionResponse{Items: make([]resdto.DistributionItem, 0, len(results))}
	for _, r := range results {
		item := resdto.DistributionItem{UserID: r.UserID}
		if r.Err != nil {
			status, code, msg := httperr.Classify(r.Err)
			if status >= http.StatusInternalServerError {
				slog.Error("coupon distribution failed",
					"coupon_id", couponID, "user_id", r.UserID, "error", r.Err.Error())
			}
			item.Error = &resdto.DistributionFailure{Code: code, Message: msg}
		} else {
			claimID := r.ClaimID
			item.ClaimID = &claimID
			out.Claimed++
		}
		out.Items = append(out.Items, item)
	}
	c.JSON(http.StatusOK, out)
}
