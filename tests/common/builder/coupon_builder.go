//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "github.com/bruceg7333/water-shop-api/internal/domain/coupon"

	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	Name         string
	Code         string
	Type         domcoupon.DiscountType
	Amount       decimal.Decimal
	MinPurchase  decimal.Decimal
	MaxDiscount  *decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	TotalLimit   *int
	PerUserLimit int
	Now          time.Time
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &CouponBuilder{
		Name:         "Summer Splash",
		Code:         "SUMMER10",
		Type:         domcoupon.DiscountPercentage,
		Amount:       decimal.NewFromInt(10),
		MinPurchase:  decimal.Zero,
		StartDate:    now.Add(-24 * time.Hour),
		EndDate:      now.Add(30 * 24 * time.Hour),
		PerUserLimit: 1,
		Now:          now,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) Params() domcoupon.Params {
	return domcoupon.Params{
		Name:         b.Name,
		Code:         b.Code,
		Type:         b.Type,
		Amount:       b.Amount,
		MinPurchase:  b.MinPurchase,
		MaxDiscount:  b.MaxDiscount,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		TotalLimit:   b.TotalLimit,
		PerUserLimit: b.PerUserLimit,
	}
}

// Build methods
func (b *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	return domcoupon.NewCoupon(b.Params(), b.Now)
}

// Fluent builder methods
func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) AsFixed(amount string) *CouponBuilder {
	b.Type = domcoupon.DiscountFixed
	b.Amount = decimal.RequireFromString(amount)
	return b
}

func (b *CouponBuilder) AsPercentage(percent string, maxDiscount *decimal.Decimal) *CouponBuilder {
	b.Type = domcoupon.DiscountPercentage
	b.Amount = decimal.RequireFromString(percent)
	b.MaxDiscount = maxDiscount
	return b
}

func (b *CouponBuilder) WithMinPurchase(amount string) *CouponBuilder {
	b.MinPurchase = decimal.RequireFromString(amount)
	return b
}

func (b *CouponBuilder) WithWindow(start, end time.Time) *CouponBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *CouponBuilder) WithTotalLimit(limit int) *CouponBuilder {
	b.TotalLimit = &limit
	return b
}

func (b *CouponBuilder) WithPerUserLimit(limit int) *CouponBuilder {
	b.PerUserLimit = limit
	return b
}
