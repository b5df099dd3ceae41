package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// GrantableOrder is what the points grant needs from a completed order.
type GrantableOrder struct {
	ID          uuid.UUID
	Number      string
	UserID      uuid.UUID
	GrandTotal  decimal.Decimal
	CompletedAt *time.Time
}
