package queries

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidClaimStatus = errs.New("invalid coupon status filter")

type CouponReadStore interface {
	ListClaimsByUser(ctx context.Context, userID uuid.UUID) ([]*ClaimView, error)
	// ListAvailable returns active in-window coupons with claim capacity left.
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableCouponView, error)
}

type CouponQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID, status *coupon.ClaimStatus) ([]*ClaimView, error)
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableCouponView, error)
}

type couponQueriesImpl struct {
	repo  CouponReadStore
	clock clock.Clock
}

func NewCouponQueries(repo CouponReadStore, clk clock.Clock) CouponQueries {
	return &couponQueriesImpl{repo: repo, clock: clk}
}

// ListMine computes each claim's status at read time so expiry needs no background job.
func (q *couponQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, status *coupon.ClaimStatus) ([]*ClaimView, error) {
	if status != nil && !status.IsValid() {
		return nil, ErrInvalidClaimStatus
	}
	rows, err := q.repo.ListClaimsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	out := make([]*ClaimView, 0, len(rows))
	for _, r := range rows {
		s := coupon.ResolveClaimStatus(r.IsUsed, r.EndDate, now)
		if status != nil && s != *status {
			continue
		}
		r.Status = s.String()
		out = append(out, r)
	}
	return out, nil
}

func (q *couponQueriesImpl) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableCouponView, error) {
	return q.repo.ListAvailable(ctx, userID)
}
