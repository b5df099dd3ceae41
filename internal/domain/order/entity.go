package order

import (
	"errors"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotOrderOwner = errors.New("order does not belong to the caller")

type Services struct {
	Clock       clock.Clock
	ShippingFee ShippingFeeCalculator
}

type Order struct {
	id            uuid.UUID
	number        Number
	userID        uuid.UUID
	items         []LineItem
	shipping      Shipping
	paymentMethod PaymentMethod
	remark        Remark
	itemsTotal    decimal.Decimal
	shippingFee   decimal.Decimal
	coupon        *AppliedCoupon
	grandTotal    decimal.Decimal
	status        Status
	paymentRef    *string
	pointsGranted bool
	createdAt     time.Time
	paidAt        *time.Time
	deliveredAt   *time.Time
	completedAt   *time.Time
	canceledAt    *time.Time
	archivedAt    *time.Time
	updatedAt     time.Time
}

// NewOrder freezes the line items and computes the totals. The coupon discount is computed by the
// caller against the items total and may not exceed it.
func NewOrder(
	services *Services,
	userID uuid.UUID,
	items []LineItem,
	shipping Shipping,
	method PaymentMethod,
	remark Remark,
	coupon *AppliedCoupon,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	itemsTotal := decimal.Zero
	for _, it := range items {
		if it.quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		itemsTotal = itemsTotal.Add(it.Subtotal())
	}
	itemsTotal = itemsTotal.Round(2)

	shippingFee := services.ShippingFee.CalculateFee(itemsTotal)

	var applied *AppliedCoupon
	discount := decimal.Zero
	if coupon != nil {
		discount = coupon.Discount.Round(2)
		if discount.IsNegative() {
			discount = decimal.Zero
		}
		if discount.GreaterThan(itemsTotal) {
			return nil, ErrDiscountExceedsTotal
		}
		c := *coupon
		c.Discount = discount
		applied = &c
	}

	now := services.Clock.Now()
	number, err := GenerateNumber(now)
	if err != nil {
		return nil, err
	}

	frozen := make([]LineItem, len(items))
	copy(frozen, items)

	return &Order{
		id:            uuid.New(),
		number:        number,
		userID:        userID,
		items:         frozen,
		shipping:      shipping,
		paymentMethod: method,
		remark:        remark,
		itemsTotal:    itemsTotal,
		shippingFee:   shippingFee,
		coupon:        applied,
		grandTotal:    itemsTotal.Add(shippingFee).Sub(discount),
		status:        StatusPendingPayment,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type Timestamps struct {
	CreatedAt   time.Time
	PaidAt      *time.Time
	DeliveredAt *time.Time
	CompletedAt *time.Time
	CanceledAt  *time.Time
	ArchivedAt  *time.Time
	UpdatedAt   time.Time
}

func ReconstructOrder(
	id uuid.UUID,
	number Number,
	userID uuid.UUID,
	items []LineItem,
	shipping Shipping,
	method PaymentMethod,
	remark Remark,
	itemsTotal, shippingFee, grandTotal decimal.Decimal,
	coupon *AppliedCoupon,
	status Status,
	paymentRef *string,
	pointsGranted bool,
	ts Timestamps,
) *Order {
	return &Order{
		id:            id,
		number:        number,
		userID:        userID,
		items:         items,
		shipping:      shipping,
		paymentMethod: method,
		remark:        remark,
		itemsTotal:    itemsTotal,
		shippingFee:   shippingFee,
		coupon:        coupon,
		grandTotal:    grandTotal,
		status:        status,
		paymentRef:    paymentRef,
		pointsGranted: pointsGranted,
		createdAt:     ts.CreatedAt,
		paidAt:        ts.PaidAt,
		deliveredAt:   ts.DeliveredAt,
		completedAt:   ts.CompletedAt,
		canceledAt:    ts.CanceledAt,
		archivedAt:    ts.ArchivedAt,
		updatedAt:     ts.UpdatedAt,
	}
}

// MarkPaid reports changed=false when the order was already paid with the same reference.
// Any other reference fails: finalized orders report so, live ones report the mismatch.
func (o *Order) MarkPaid(paymentRef string, now time.Time) (bool, error) {
	if o.status.IsPaid() {
		if o.paymentRef != nil && *o.paymentRef == paymentRef {
			return false, nil
		}
		if o.status.IsTerminal() {
			return false, alreadyFinalized(o.status, ActionPay)
		}
		return false, ErrPaymentRefMismatch
	}
	next, err := NextStatus(o.status, ActionPay)
	if err != nil {
		return false, err
	}
	ref := paymentRef
	o.status = next
	o.paymentRef = &ref
	o.paidAt = &now
	o.updatedAt = now
	return true, nil
}

func (o *Order) MarkDelivered(now time.Time) error {
	next, err := NextStatus(o.status, ActionDeliver)
	if err != nil {
		return err
	}
	o.status = next
	o.deliveredAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) ConfirmReceipt(now time.Time) error {
	next, err := NextStatus(o.status, ActionReceive)
	if err != nil {
		return err
	}
	o.status = next
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	next, err := NextStatus(o.status, ActionCancel)
	if err != nil {
		return err
	}
	o.status = next
	o.canceledAt = &now
	o.updatedAt = now
	return nil
}

// Archive hides a finished order from its owner's lists. Archiving twice is a no-op.
func (o *Order) Archive(now time.Time) error {
	if !o.status.IsTerminal() {
		return invalidTransition(o.status, ActionArchive)
	}
	if o.archivedAt != nil {
		return nil
	}
	o.archivedAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) EnsureOwnedBy(userID uuid.UUID) error {
	if o.userID != userID {
		return ErrNotOrderOwner
	}
	return nil
}

func (o *Order) Discount() decimal.Decimal {
	if o.coupon == nil {
		return decimal.Zero
	}
	return o.coupon.Discount
}

func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) Number() Number               { return o.number }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) Shipping() Shipping           { return o.shipping }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Remark() Remark               { return o.remark }
func (o *Order) ItemsTotal() decimal.Decimal  { return o.itemsTotal }
func (o *Order) ShippingFee() decimal.Decimal { return o.shippingFee }
func (o *Order) Coupon() *AppliedCoupon       { return o.coupon }
func (o *Order) GrandTotal() decimal.Decimal  { return o.grandTotal }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentRef() *string          { return o.paymentRef }
func (o *Order) PointsGranted() bool          { return o.pointsGranted }
func (o *Order) IsPaid() bool                 { return o.status.IsPaid() }
func (o *Order) IsDelivered() bool            { return o.status.IsDelivered() }
func (o *Order) IsArchived() bool             { return o.archivedAt != nil }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) PaidAt() *time.Time           { return o.paidAt }
func (o *Order) DeliveredAt() *time.Time      { return o.deliveredAt }
func (o *Order) CompletedAt() *time.Time      { return o.completedAt }
func (o *Order) CanceledAt() *time.Time       { return o.canceledAt }
func (o *Order) ArchivedAt() *time.Time       { return o.archivedAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
