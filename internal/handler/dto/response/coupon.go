package response

import (
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClaimResponse struct {
	ClaimID  uuid.UUID `json:"claim_id"`
	CouponID uuid.UUID `json:"coupon_id"`
	Slot     int       `json:"slot"`
}

type MyCouponsResponse struct {
	Items []*queries.ClaimView `json:"items"`
}

type AvailableCouponsResponse struct {
	Items []*queries.AvailableCouponView `json:"items"`
}

type CouponPreviewResponse struct {
	CouponID uuid.UUID       `json:"coupon_id"`
	ClaimID  uuid.UUID       `json:"claim_id"`
	Name     string          `json:"name"`
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Payable  decimal.Decimal `json:"payable"`
}

type DistributionFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DistributionItem struct {
	UserID  uuid.UUID            `json:"user_id"`
	ClaimID *uuid.UUID           `json:"claim_id,omitempty"`
	Error   *DistributionFailure `json:"error,omitempty"`
}

type DistributionResponse struct {
	Claimed int                `json:"claimed"`
	Items   []DistributionItem `json:"items"`
}

type CreateCouponResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromClaimResult(r *commands.ClaimResult) *ClaimResponse {
	return &ClaimResponse{
		ClaimID:  r.ClaimID,
		CouponID: r.CouponID,
		Slot:     r.Slot,
	}
}

func FromCouponPreview(p *commands.CouponPreview) *CouponPreviewResponse {
	return &CouponPreviewResponse{
		CouponID: p.CouponID,
		ClaimID:  p.ClaimID,
		Name:     p.Name,
		Code:     p.Code,
		Subtotal: p.Subtotal,
		Discount: p.Discount,
		Payable:  p.Payable,
	}
}
