package readstore

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	listClaimsByUser = `
SELECT uc.id, uc.coupon_id, c.name, c.code, c.discount_type, c.amount, c.min_purchase, c.max_discount,
       c.start_date, c.end_date, uc.is_used, uc.used_at, uc.order_id, uc.claimed_at
FROM user_coupons uc
JOIN coupons c ON c.id = uc.coupon_id
WHERE uc.user_id = $1
ORDER BY uc.claimed_at DESC, uc.id DESC`

	listAvailableCoupons = `
SELECT c.id, c.name, c.code, c.discount_type, c.amount, c.min_purchase, c.max_discount,
       c.start_date, c.end_date,
       CASE WHEN c.total_limit IS NULL THEN NULL ELSE c.total_limit - c.issued_count END,
       EXISTS (SELECT 1 FROM user_coupons uc WHERE uc.coupon_id = c.id AND uc.user_id = $1)
FROM coupons c
WHERE c.is_active
  AND c.start_date <= now() AND c.end_date > now()
  AND (c.total_limit IS NULL OR c.issued_count < c.total_limit)
ORDER BY c.end_date, c.id`
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(db db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: db}
}

func (r *CouponReadStore) ListClaimsByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ClaimView, error) {
	rows, err := r.db.Query(ctx, listClaimsByUser, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupon claims", err)
	}
	claims, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ClaimView, error) {
		var (
			v           queries.ClaimView
			maxDiscount decimal.NullDecimal
		)
		err := row.Scan(
			&v.ID, &v.CouponID, &v.Name, &v.Code, &v.DiscountType, &v.Amount, &v.MinPurchase, &maxDiscount,
			&v.StartDate, &v.EndDate, &v.IsUsed, &v.UsedAt, &v.OrderID, &v.ClaimedAt,
		)
		if maxDiscount.Valid {
			v.MaxDiscount = &maxDiscount.Decimal
		}
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan coupon claims", err)
	}
	return claims, nil
}

func (r *CouponReadStore) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*queries.AvailableCouponView, error) {
	rows, err := r.db.Query(ctx, listAvailableCoupons, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available coupons", err)
	}
	coupons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.AvailableCouponView, error) {
		var (
			v           queries.AvailableCouponView
			maxDiscount decimal.NullDecimal
		)
		err := row.Scan(
			&v.ID, &v.Name, &v.Code, &v.DiscountType, &v.Amount, &v.MinPurchase, &maxDiscount,
			&v.StartDate, &v.EndDate, &v.Remaining, &v.Claimed,
		)
		if maxDiscount.Valid {
			v.MaxDiscount = &maxDiscount.Decimal
		}
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan available coupons", err)
	}
	return coupons, nil
}
