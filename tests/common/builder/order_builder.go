//go:build unit || e2e

package builder

import (
	"time"

	domorder "github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemSpec struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Variant     string
}

type OrderBuilder struct {
	UserID        uuid.UUID
	Items         []OrderItemSpec
	ShippingName  string
	ShippingPhone string
	Address       string
	PaymentMethod string
	Remark        string
	Coupon        *domorder.AppliedCoupon
	ShippingFee   decimal.Decimal
	FreeThreshold decimal.Decimal
	Now           time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		UserID: uuid.New(),
		Items: []OrderItemSpec{{
			ProductID:   uuid.New(),
			ProductName: "Spring Water 550ml x24",
			UnitPrice:   decimal.RequireFromString("12.50"),
			Quantity:    2,
			Variant:     "550ml",
		}},
		ShippingName:  "Zhang San",
		ShippingPhone: "13800000000",
		Address:       "1 Water Street",
		PaymentMethod: string(domorder.PaymentWeChatPay),
		ShippingFee:   decimal.RequireFromString("5.00"),
		Now:           time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) Services() *domorder.Services {
	return &domorder.Services{
		Clock:       clock.NewMockClock(b.Now),
		ShippingFee: domorder.NewFlatShippingFee(b.ShippingFee, b.FreeThreshold),
	}
}

// Build methods
func (b *OrderBuilder) BuildDomain() (*domorder.Order, error) {
	items := make([]domorder.LineItem, 0, len(b.Items))
	for _, it := range b.Items {
		li, err := domorder.NewLineItem(it.ProductID, it.ProductName, it.UnitPrice, it.Quantity, it.Variant)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	shipping, err := domorder.NewShipping(b.ShippingName, b.ShippingPhone, "", "", "", b.Address)
	if err != nil {
		return nil, err
	}
	remark, err := domorder.NewRemark(b.Remark)
	if err != nil {
		return nil, err
	}
	return domorder.NewOrder(b.Services(), b.UserID, items, shipping, domorder.PaymentMethod(b.PaymentMethod), remark, b.Coupon)
}

// BuildInStatus walks a fresh order through the lifecycle up to status.
func (b *OrderBuilder) BuildInStatus(status domorder.Status) (*domorder.Order, error) {
	o, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	now := b.Now
	steps := map[domorder.Status][]func() error{
		domorder.StatusPendingPayment: nil,
		domorder.StatusPendingShipment: {
			func() error { _, err := o.MarkPaid("TX-1", now); return err },
		},
		domorder.StatusPendingReceipt: {
			func() error { _, err := o.MarkPaid("TX-1", now); return err },
			func() error { return o.MarkDelivered(now) },
		},
		domorder.StatusCompleted: {
			func() error { _, err := o.MarkPaid("TX-1", now); return err },
			func() error { return o.MarkDelivered(now) },
			func() error { return o.ConfirmReceipt(now) },
		},
		domorder.StatusCanceled: {
			func() error { return o.Cancel(now) },
		},
	}
	for _, step := range steps[status] {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Fluent builder methods
func (b *OrderBuilder) WithUserID(userID uuid.UUID) *OrderBuilder {
	b.UserID = userID
	return b
}

func (b *OrderBuilder) WithItems(items ...OrderItemSpec) *OrderBuilder {
	b.Items = items
	return b
}

func (b *OrderBuilder) WithPaymentMethod(method string) *OrderBuilder {
	b.PaymentMethod = method
	return b
}

func (b *OrderBuilder) WithCoupon(c *domorder.AppliedCoupon) *OrderBuilder {
	b.Coupon = c
	return b
}

func (b *OrderBuilder) WithShippingFee(fee, freeThreshold decimal.Decimal) *OrderBuilder {
	b.ShippingFee = fee
	b.FreeThreshold = freeThreshold
	return b
}

func (b *OrderBuilder) WithRemark(remark string) *OrderBuilder {
	b.Remark = remark
	return b
}
