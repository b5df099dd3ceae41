package request

import (
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/pkg/patch"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=999"`
	Variant   *string   `json:"variant,omitempty"`
}

type ShippingRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Address  string `json:"address" binding:"required"`
}

type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
	Shipping      ShippingRequest       `json:"shipping" binding:"required"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=wechat_pay cash_on_delivery"`
	Remark        *string               `json:"remark,omitempty"`
	CouponClaimID *uuid.UUID            `json:"coupon_claim_id,omitempty"`
	CouponCode    *string               `json:"coupon_code,omitempty"`
}

func (r *CheckoutRequest) ToInput(userID uuid.UUID, idempotencyKey *uuid.UUID) commands.CheckoutInput {
	items := make([]commands.CheckoutItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.CheckoutItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Variant:   patch.Text(it.Variant),
		}
	}

	return commands.CheckoutInput{
		UserID: userID,
		Items:  items,
		Shipping: commands.ShippingInput{
			Name:     r.Shipping.Name,
			Phone:    r.Shipping.Phone,
			Province: r.Shipping.Province,
			City:     r.Shipping.City,
			District: r.Shipping.District,
			Address:  r.Shipping.Address,
		},
		PaymentMethod:  r.PaymentMethod,
		Remark:         patch.Text(r.Remark),
		CouponClaimID:  r.CouponClaimID,
		CouponCode:     r.couponCode(),
		IdempotencyKey: idempotencyKey,
	}
}

func (r *CheckoutRequest) couponCode() *string {
	code := patch.Text(r.CouponCode)
	if code == "" {
		return nil
	}
	return &code
}

type ListOrdersQuery struct {
	Status string `form:"status"`
	After  string `form:"after"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *ListOrdersQuery) ToFilters() queries.OrderFilters {
	if q.Status == "" {
		return queries.OrderFilters{}
	}
	s := order.Status(q.Status)
	return queries.OrderFilters{Status: &s}
}

func (q *ListOrdersQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

const dateLayout = "2006-01-02"

// AdminListOrdersQuery filters the back-office order list. Dates are whole days; end_date is inclusive.
type AdminListOrdersQuery struct {
	Status    string `form:"status"`
	Keyword   string `form:"keyword" binding:"max=100"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	After     string `form:"after"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *AdminListOrdersQuery) ToFilters() queries.OrderFilters {
	f := queries.OrderFilters{Keyword: q.Keyword}
	if q.Status != "" {
		s := order.Status(q.Status)
		f.Status = &s
	}
	if t, err := time.Parse(dateLayout, q.StartDate); err == nil {
		f.From = &t
	}
	if t, err := time.Parse(dateLayout, q.EndDate); err == nil {
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}
	return f
}

func (q *AdminListOrdersQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}
