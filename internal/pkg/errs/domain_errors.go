package errs

import "errors"

// Sentinel errors shared by the usecase layers and the HTTP error mapping
var (
	// Lookup errors
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrClaimNotFound   = errors.New("coupon claim not found")
	ErrUserNotFound    = errors.New("user not found")

	// Idempotency errors
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")
	ErrDuplicateRequest       = errors.New("idempotency key reused with a different request")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Authorization errors
	ErrAdminRequired = errors.New("admin role required")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrTransientFailure        = errors.New("transient failure, retry later")
	ErrPaymentGateway          = errors.New("payment gateway unavailable")
	ErrInvalidSignature        = errors.New("invalid payment notification signature")
	ErrPaymentMethodMismatch   = errors.New("order does not use online payment")
)
