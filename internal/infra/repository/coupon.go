package repository

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	couponColumns = `id, name, code, discount_type, amount, min_purchase, max_discount,
start_date, end_date, total_limit, per_user_limit, issued_count, used_count, is_active, created_at, updated_at`

	insertCoupon = `
INSERT INTO coupons (id, name, code, discount_type, amount, min_purchase, max_discount,
                     start_date, end_date, total_limit, per_user_limit, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	findCouponByID   = `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
	findCouponByCode = `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	// The row lock taken here serializes concurrent claims of one coupon.
	incrementCouponIssued = `
UPDATE coupons
SET issued_count = issued_count + 1, updated_at = now()
WHERE id = $1 AND is_active AND (total_limit IS NULL OR issued_count < total_limit)`

	incrementCouponUsed = `
UPDATE coupons
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1 AND (total_limit IS NULL OR used_count < total_limit)`

	decrementCouponUsed = `
UPDATE coupons
SET used_count = used_count - 1, updated_at = now()
WHERE id = $1 AND used_count > 0`
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

func (r *CouponRepository) Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) error {
	rule := c.Rule()
	_, err := tx.Exec(ctx, insertCoupon,
		c.ID(), c.Name(), c.Code().String(), rule.Type.String(), rule.Amount, c.MinPurchase(), rule.MaxDiscount,
		c.StartDate(), c.EndDate(), c.TotalLimit(), c.PerUserLimit(), c.IsActive(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create coupon", err)
	}
	return nil
}

func (r *CouponRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*coupon.Coupon, error) {
	c, err := scanCoupon(tx.QueryRow(ctx, findCouponByID, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return c, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, tx db.DBTX, code coupon.Code) (*coupon.Coupon, error) {
	c, err := scanCoupon(tx.QueryRow(ctx, findCouponByCode, code.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return c, nil
}

func (r *CouponRepository) IncrementIssued(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, incrementCouponIssued, id)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon issued count", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrCouponLimitReached
	}
	return nil
}

func (r *CouponRepository) IncrementUsed(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, incrementCouponUsed, id)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon used count", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrCouponLimitReached
	}
	return nil
}

func (r *CouponRepository) DecrementUsed(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, decrementCouponUsed, id); err != nil {
		return infra.WrapRepoErr("failed to decrement coupon used count", err)
	}
	return nil
}

func scanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var (
		id                     uuid.UUID
		name, code, discount   string
		amount, minPurchase    decimal.Decimal
		maxDiscount            decimal.NullDecimal
		startDate, endDate     time.Time
		totalLimit             *int
		perUserLimit           int
		issuedCount, usedCount int
		isActive               bool
		createdAt, updatedAt   time.Time
	)
	err := row.Scan(&id, &name, &code, &discount, &amount, &minPurchase, &maxDiscount,
		&startDate, &endDate, &totalLimit, &perUserLimit, &issuedCount, &usedCount, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rule := coupon.Rule{Type: coupon.DiscountType(discount), Amount: amount}
	if maxDiscount.Valid {
		md := maxDiscount.Decimal
		rule.MaxDiscount = &md
	}

	return coupon.ReconstructCoupon(
		id, name, coupon.Code(code), rule, minPurchase,
		startDate, endDate, totalLimit, perUserLimit,
		coupon.Counters{IssuedCount: issuedCount, UsedCount: usedCount},
		isActive, createdAt, updatedAt,
	), nil
}
