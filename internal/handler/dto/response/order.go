package response

import (
	"time"

	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Variant     string          `json:"variant"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type ShippingResponse struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Address  string `json:"address"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Items          []OrderItemResponse `json:"items"`
	Shipping       ShippingResponse    `json:"shipping"`
	PaymentMethod  string              `json:"payment_method"`
	Remark         string              `json:"remark"`
	ItemsTotal     decimal.Decimal     `json:"items_total"`
	ShippingFee    decimal.Decimal     `json:"shipping_fee"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
	CouponCode     *string             `json:"coupon_code,omitempty"`
	Status         string              `json:"status"`
	IsPaid         bool                `json:"is_paid"`
	IsDelivered    bool                `json:"is_delivered"`
	PaymentRef     *string             `json:"payment_ref,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	PaidAt         *time.Time          `json:"paid_at,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	CanceledAt     *time.Time          `json:"canceled_at,omitempty"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type CheckoutResponse struct {
	Order      *OrderResponse `json:"order"`
	IsReplayed bool           `json:"is_replayed"`
}

type OrderListResponse struct {
	Items      []*queries.OrderListItem `json:"items"`
	NextCursor *queries.Cursor          `json:"next_cursor,omitempty"`
}

type OrderStatusResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	Status         string    `json:"status"`
	Changed        bool      `json:"changed"`
	PointsCredited int64     `json:"points_credited,omitempty"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	var out OrderResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromOrderStatusResult(r *commands.OrderStatusResult) *OrderStatusResponse {
	return &OrderStatusResponse{
		OrderID:        r.OrderID,
		Status:         r.Status.String(),
		Changed:        r.Changed,
		PointsCredited: r.PointsCredited,
	}
}
