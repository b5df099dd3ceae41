package request

import (
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/pkg/patch"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClaimCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type ListMyCouponsQuery struct {
	Status string `form:"status"`
}

func (q *ListMyCouponsQuery) ToStatus() *coupon.ClaimStatus {
	if q.Status == "" {
		return nil
	}
	s := coupon.ClaimStatus(q.Status)
	return &s
}

type CreateCouponRequest struct {
	Name         string           `json:"name" binding:"required,max=100"`
	Code         string           `json:"code" binding:"required"`
	DiscountType string           `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Amount       decimal.Decimal  `json:"amount"`
	MinPurchase  *decimal.Decimal `json:"min_purchase,omitempty"`
	MaxDiscount  *decimal.Decimal `json:"max_discount,omitempty"`
	StartDate    time.Time        `json:"start_date" binding:"required"`
	EndDate      time.Time        `json:"end_date" binding:"required"`
	TotalLimit   *int             `json:"total_limit,omitempty"`
	PerUserLimit *int             `json:"per_user_limit,omitempty"`
}

func (r *CreateCouponRequest) ToInput() commands.CreateCouponInput {
	return commands.CreateCouponInput{
		Name:         r.Name,
		Code:         r.Code,
		DiscountType: r.DiscountType,
		Amount:       r.Amount,
		MinPurchase:  patch.Coalesce(r.MinPurchase, decimal.Zero),
		MaxDiscount:  r.MaxDiscount,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		TotalLimit:   r.TotalLimit,
		PerUserLimit: patch.Coalesce(r.PerUserLimit, 1),
	}
}

type VerifyCouponQuery struct {
	Subtotal string `form:"subtotal" binding:"required,numeric"`
}

func (q *VerifyCouponQuery) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(q.Subtotal)
}

type DistributeCouponRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" binding:"required,min=1,max=100"`
}
