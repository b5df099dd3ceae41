package httperr

import (
	"net/http"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/domain/points"
	"github.com/bruceg7333/water-shop-api/internal/domain/product"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StockDetail struct {
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

type StatusDetail struct {
	CurrentStatus string `json:"current_status"`
	Action        string `json:"action"`
}

const (
	CodeInternal          = "INTERNAL"
	CodeValidation        = "VALIDATION_FAILED"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeAlreadyFinalized  = "ORDER_ALREADY_FINALIZED"
)

type rule struct {
	target  error
	status  int
	code    string
	message string
}

// Evaluated in order; the first sentinel the error matches wins.
var rules = []rule{
	{errs.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found"},
	{errs.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"},
	{errs.ErrCouponNotFound, http.StatusNotFound, "COUPON_NOT_FOUND", "Coupon not found"},
	{errs.ErrClaimNotFound, http.StatusNotFound, "CLAIM_NOT_FOUND", "Coupon claim not found"},
	{errs.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found"},

	{coupon.ErrCouponExpired, http.StatusUnprocessableEntity, "COUPON_EXPIRED", "Coupon has expired"},
	{coupon.ErrCouponNotStarted, http.StatusUnprocessableEntity, "COUPON_NOT_STARTED", "Coupon is not yet valid"},
	{coupon.ErrCouponMinimumNotMet, http.StatusUnprocessableEntity, "COUPON_MINIMUM_NOT_MET", "Order amount does not meet the coupon minimum"},
	{coupon.ErrCouponAlreadyUsed, http.StatusConflict, "COUPON_ALREADY_USED", "Coupon already used"},
	{coupon.ErrCouponLimitReached, http.StatusConflict, "COUPON_LIMIT_REACHED", "Coupon usage limit reached"},
	{commands.ErrDuplicateCouponCode, http.StatusConflict, "DUPLICATE_COUPON_CODE", "Coupon code already exists"},

	{product.ErrProductInactive, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"},
	{order.ErrNotOrderOwner, http.StatusForbidden, "NOT_ORDER_OWNER", "Order does not belong to the caller"},
	{order.ErrPaymentRefMismatch, http.StatusConflict, "PAYMENT_REF_MISMATCH", "Order already paid with a different payment reference"},
	{commands.ErrOrderNotCompleted, http.StatusConflict, "ORDER_NOT_COMPLETED", "Order is not completed"},
	{commands.ErrAdminRequired, http.StatusForbidden, "ADMIN_REQUIRED", "Insufficient permissions"},
	{points.ErrNothingToDebit, http.StatusUnprocessableEntity, "NOTHING_TO_DEBIT", "Points balance is zero"},

	{errs.ErrIdempotencyInProgress, http.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "Request is currently being processed"},
	{errs.ErrDuplicateRequest, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED", "Idempotency key reused with a different request"},
	{errs.ErrPaymentMethodMismatch, http.StatusConflict, "PAYMENT_METHOD_MISMATCH", "Order does not use this payment method"},
	{errs.ErrInvalidSignature, http.StatusUnauthorized, "INVALID_SIGNATURE", "Invalid notification signature"},
	{errs.ErrPaymentGateway, http.StatusBadGateway, "PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway unavailable"},

	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{commands.ErrTokenValidation, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token"},
	{commands.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE", "Account is inactive"},

	{queries.ErrInvalidCursor, http.StatusBadRequest, "INVALID_CURSOR", "Invalid cursor"},
	{queries.ErrInvalidStatusFilter, http.StatusBadRequest, "INVALID_STATUS_FILTER", "Invalid status filter"},
	{queries.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE", "Invalid date range"},
	{queries.ErrInvalidClaimStatus, http.StatusBadRequest, "INVALID_STATUS_FILTER", "Invalid status filter"},
	{errs.ErrDomainValidation, http.StatusBadRequest, CodeValidation, "Validation failed"},

	{errs.ErrTransientFailure, http.StatusServiceUnavailable, "TRANSIENT_FAILURE", "Service busy, retry later"},
}

// Respond maps a use case error onto the response and aborts the request.
func Respond(c *gin.Context, err error) {
	var stockErr *product.InsufficientStockError
	if errs.As(err, &stockErr) {
		AbortWithError(c, http.StatusConflict, CodeInsufficientStock, err, "Insufficient stock", StockDetail{
			ProductID: stockErr.ProductID.String(),
			Product:   stockErr.ProductName,
			Requested: stockErr.Requested,
			Available: stockErr.Available,
		})
		return
	}

	var transitionErr *order.TransitionError
	if errs.As(err, &transitionErr) {
		code, msg := CodeInvalidTransition, "Invalid order status transition"
		if errs.Is(err, order.ErrOrderAlreadyFinalized) {
			code, msg = CodeAlreadyFinalized, "Order already finalized"
		}
		AbortWithError(c, http.StatusConflict, code, err, msg, StatusDetail{
			CurrentStatus: transitionErr.Current.String(),
			Action:        string(transitionErr.Action),
		})
		return
	}

	status, code, msg := Classify(err)
	AbortWithError(c, status, code, err, msg, nil)
}

// Classify resolves err against the sentinel table. Unmatched errors are internal.
func Classify(err error) (status int, code, message string) {
	for _, r := range rules {
		if errs.Is(err, r.target) {
			return r.status, r.code, r.message
		}
	}
	return http.StatusInternalServerError, CodeInternal, "Internal server error"
}

// BadRequest reports malformed input that never reached a use case.
func BadRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, CodeValidation, err, msg, nil)
}
