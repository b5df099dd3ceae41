package repository

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	claimColumns = `id, coupon_id, user_id, slot, is_used, used_at, order_id, claimed_at`

	insertClaim = `
INSERT INTO user_coupons (id, coupon_id, user_id, slot, is_used, claimed_at)
VALUES ($1, $2, $3, $4, FALSE, $5)`

	countClaimsByUser = `SELECT count(*) FROM user_coupons WHERE coupon_id = $1 AND user_id = $2`

	findClaimByID = `SELECT ` + claimColumns + ` FROM user_coupons WHERE id = $1`

	findUnusedClaim = `
SELECT ` + claimColumns + `
FROM user_coupons
WHERE coupon_id = $1 AND user_id = $2 AND NOT is_used
ORDER BY slot
LIMIT 1`

	markClaimUsed = `
UPDATE user_coupons
SET is_used = TRUE, used_at = $4, order_id = $3
WHERE id = $1 AND user_id = $2 AND NOT is_used`

	releaseClaim = `
UPDATE user_coupons
SET is_used = FALSE, used_at = NULL, order_id = NULL
WHERE id = $1 AND order_id = $2`
)

type ClaimRepository struct{}

func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{}
}

func (r *ClaimRepository) Create(ctx context.Context, tx db.DBTX, claim *coupon.Claim) error {
	_, err := tx.Exec(ctx, insertClaim, claim.ID(), claim.CouponID(), claim.UserID(), claim.Slot(), claim.ClaimedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create coupon claim", err)
	}
	return nil
}

func (r *ClaimRepository) CountByUser(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (int, error) {
	var n int
	if err := tx.QueryRow(ctx, countClaimsByUser, couponID, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon claims", err)
	}
	return n, nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*coupon.Claim, error) {
	c, err := scanClaim(tx.QueryRow(ctx, findClaimByID, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon claim", err)
	}
	return c, nil
}

func (r *ClaimRepository) FindUnusedByCoupon(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (*coupon.Claim, error) {
	c, err := scanClaim(tx.QueryRow(ctx, findUnusedClaim, couponID, userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find unused coupon claim", err)
	}
	return c, nil
}

func (r *ClaimRepository) MarkUsed(ctx context.Context, tx db.DBTX, claimID, userID, orderID uuid.UUID, usedAt time.Time) error {
	tag, err := tx.Exec(ctx, markClaimUsed, claimID, userID, orderID, usedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark coupon claim used", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrCouponAlreadyUsed
	}
	return nil
}

func (r *ClaimRepository) Release(ctx context.Context, tx db.DBTX, claimID, orderID uuid.UUID) error {
	tag, err := tx.Exec(ctx, releaseClaim, claimID, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to release coupon claim", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon claim not attached to order", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanClaim(row pgx.Row) (*coupon.Claim, error) {
	var (
		id, couponID, userID uuid.UUID
		slot                 int
		isUsed               bool
		usedAt               *time.Time
		orderID              *uuid.UUID
		claimedAt            time.Time
	)
	if err := row.Scan(&id, &couponID, &userID, &slot, &isUsed, &usedAt, &orderID, &claimedAt); err != nil {
		return nil, err
	}
	return coupon.ReconstructClaim(id, couponID, userID, slot, isUsed, usedAt, orderID, claimedAt), nil
}
