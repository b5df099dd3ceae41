package coupon

import (
	"time"

	"github.com/google/uuid"
)

type ClaimStatus string

const (
	ClaimAvailable ClaimStatus = "available"
	ClaimUsed      ClaimStatus = "used"
	ClaimExpired   ClaimStatus = "expired"
)

func (s ClaimStatus) String() string {
	return string(s)
}

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimAvailable, ClaimUsed, ClaimExpired:
		return true
	default:
		return false
	}
}

// ResolveClaimStatus derives the status of a claim at read time; it is never stored.
func ResolveClaimStatus(isUsed bool, couponEnd, now time.Time) ClaimStatus {
	if isUsed {
		return ClaimUsed
	}
	if couponEnd.Before(now) {
		return ClaimExpired
	}
	return ClaimAvailable
}

// Claim is one slot of a user's allowance for a coupon.
type Claim struct {
	id        uuid.UUID
	couponID  uuid.UUID
	userID    uuid.UUID
	slot      int
	isUsed    bool
	usedAt    *time.Time
	orderID   *uuid.UUID
	claimedAt time.Time
}

func NewClaim(couponID, userID uuid.UUID, slot int, now time.Time) *Claim {
	return &Claim{
		id:        uuid.New(),
		couponID:  couponID,
		userID:    userID,
		slot:      slot,
		claimedAt: now,
	}
}

func ReconstructClaim(
	id, couponID, userID uuid.UUID,
	slot int,
	isUsed bool,
	usedAt *time.Time,
	orderID *uuid.UUID,
	claimedAt time.Time,
) *Claim {
	return &Claim{
		id:        id,
		couponID:  couponID,
		userID:    userID,
		slot:      slot,
		isUsed:    isUsed,
		usedAt:    usedAt,
		orderID:   orderID,
		claimedAt: claimedAt,
	}
}

func (c *Claim) EnsureUsable(userID uuid.UUID) error {
	if c.userID != userID || c.isUsed {
		return ErrCouponAlreadyUsed
	}
	return nil
}

func (c *Claim) Status(couponEnd, now time.Time) ClaimStatus {
	return ResolveClaimStatus(c.isUsed, couponEnd, now)
}

func (c *Claim) ID() uuid.UUID        { return c.id }
func (c *Claim) CouponID() uuid.UUID  { return c.couponID }
func (c *Claim) UserID() uuid.UUID    { return c.userID }
func (c *Claim) Slot() int            { return c.slot }
func (c *Claim) IsUsed() bool         { return c.isUsed }
func (c *Claim) UsedAt() *time.Time   { return c.usedAt }
func (c *Claim) OrderID() *uuid.UUID  { return c.orderID }
func (c *Claim) ClaimedAt() time.Time { return c.claimedAt }
