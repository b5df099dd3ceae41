package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthorizedUserView is the caller's profile as shown after login and on /me.
type AuthorizedUserView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	PointsBalance int64     `json:"points_balance"`
	UsableCoupons int       `json:"usable_coupons"`
}

type OrderItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Variant     string          `json:"variant"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type ShippingView struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Address  string `json:"address"`
}

type OrderView struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	UserID         uuid.UUID       `json:"user_id"`
	Items          []OrderItemView `json:"items"`
	Shipping       ShippingView    `json:"shipping"`
	PaymentMethod  string          `json:"payment_method"`
	Remark         string          `json:"remark"`
	ItemsTotal     decimal.Decimal `json:"items_total"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	Status         string          `json:"status"`
	IsPaid         bool            `json:"is_paid"`
	IsDelivered    bool            `json:"is_delivered"`
	PaymentRef     *string         `json:"payment_ref,omitempty"`
	PointsGranted  bool            `json:"points_granted"`
	CreatedAt      time.Time       `json:"created_at"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CanceledAt     *time.Time      `json:"canceled_at,omitempty"`
	ArchivedAt     *time.Time      `json:"archived_at,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID          uuid.UUID       `json:"id"`
	UserID      *uuid.UUID      `json:"user_id,omitempty"`
	Recipient   string          `json:"recipient,omitempty"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	FirstItem   string          `json:"first_item"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ClaimView struct {
	ID           uuid.UUID        `json:"id"`
	CouponID     uuid.UUID        `json:"coupon_id"`
	Name         string           `json:"name"`
	Code         string           `json:"code"`
	DiscountType string           `json:"discount_type"`
	Amount       decimal.Decimal  `json:"amount"`
	MinPurchase  decimal.Decimal  `json:"min_purchase"`
	MaxDiscount  *decimal.Decimal `json:"max_discount,omitempty"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	Status       string           `json:"status"`
	IsUsed       bool             `json:"is_used"`
	UsedAt       *time.Time       `json:"used_at,omitempty"`
	OrderID      *uuid.UUID       `json:"order_id,omitempty"`
	ClaimedAt    time.Time        `json:"claimed_at"`
}

type AvailableCouponView struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Code         string           `json:"code"`
	DiscountType string           `json:"discount_type"`
	Amount       decimal.Decimal  `json:"amount"`
	MinPurchase  decimal.Decimal  `json:"min_purchase"`
	MaxDiscount  *decimal.Decimal `json:"max_discount,omitempty"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	Remaining    *int             `json:"remaining,omitempty"`
	Claimed      bool             `json:"claimed"`
}

type PointsBalanceView struct {
	UserID  uuid.UUID `json:"user_id"`
	Balance int64     `json:"balance"`
}

type PointsEntryView struct {
	ID           uuid.UUID  `json:"id"`
	Amount       int64      `json:"amount"`
	Direction    string     `json:"direction"`
	Source       string     `json:"source"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	OrderID      *uuid.UUID `json:"order_id,omitempty"`
	ReviewID     *uuid.UUID `json:"review_id,omitempty"`
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	BalanceAfter int64      `json:"balance_after"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CartLineView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"is_active"`
	Variant     string          `json:"variant"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Lines      []CartLineView  `json:"lines"`
	ItemsTotal decimal.Decimal `json:"items_total"`
}
