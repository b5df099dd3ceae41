//go:build unit

package order_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	domorder "github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OrderBuilder)
	errIs  error
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOrder(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, domorder.StatusPendingPayment, actual.Status())
		assert.True(t, actual.ItemsTotal().Equal(dec("25.00")))
		assert.True(t, actual.ShippingFee().Equal(dec("5.00")))
		assert.True(t, actual.GrandTotal().Equal(dec("30.00")))
		assert.False(t, actual.IsPaid())
		assert.False(t, actual.IsDelivered())
		assert.Nil(t, actual.PaymentRef())
		assert.Regexp(t, regexp.MustCompile(`^20250601\d{6}$`), actual.Number().String())
	})

	t.Run("free shipping above threshold", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().
			WithShippingFee(dec("5"), dec("20")).
			BuildDomain()
		require.NoError(t, err)
		assert.True(t, actual.ShippingFee().IsZero())
		assert.True(t, actual.GrandTotal().Equal(dec("25")))
	})

	t.Run("coupon discount lowers grand total", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().
			WithCoupon(&domorder.AppliedCoupon{CouponID: uuid.New(), ClaimID: uuid.New(), Code: "SAVE3", Discount: dec("3")}).
			BuildDomain()
		require.NoError(t, err)
		assert.True(t, actual.Discount().Equal(dec("3")))
		assert.True(t, actual.GrandTotal().Equal(dec("27")))
		assert.True(t, actual.GrandTotal().Equal(actual.ItemsTotal().Add(actual.ShippingFee()).Sub(actual.Discount())))
	})

	t.Run("line items are frozen", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		items := actual.Items()
		items[0] = domorder.LineItem{}
		assert.Equal(t, "Spring Water 550ml x24", actual.Items()[0].ProductName())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no items",
				mutate: func(b *builder.OrderBuilder) { b.WithItems() },
				errIs:  domorder.ErrEmptyItems,
			},
			{
				name: "zero quantity",
				mutate: func(b *builder.OrderBuilder) {
					b.Items[0].Quantity = 0
				},
				errIs: domorder.ErrInvalidQuantity,
			},
			{
				name: "negative price",
				mutate: func(b *builder.OrderBuilder) {
					b.Items[0].UnitPrice = dec("-1")
				},
				errIs: domorder.ErrNegativePrice,
			},
			{
				name:   "unknown payment method",
				mutate: func(b *builder.OrderBuilder) { b.WithPaymentMethod("credit_card") },
				errIs:  domorder.ErrInvalidPaymentMethod,
			},
			{
				name:   "cash on delivery",
				mutate: func(b *builder.OrderBuilder) { b.WithPaymentMethod("cash_on_delivery") },
			},
			{
				name:   "missing address",
				mutate: func(b *builder.OrderBuilder) { b.Address = "  " },
				errIs:  domorder.ErrInvalidShipping,
			},
			{
				name:   "landline phone",
				mutate: func(b *builder.OrderBuilder) { b.ShippingPhone = "0571-88888888" },
				errIs:  domorder.ErrInvalidShippingPhone,
			},
			{
				name: "discount above items total",
				mutate: func(b *builder.OrderBuilder) {
					b.WithCoupon(&domorder.AppliedCoupon{Discount: dec("25.01")})
				},
				errIs: domorder.ErrDiscountExceedsTotal,
			},
		})
	})
}

func TestOrderTransitions(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	apply := map[domorder.Action]func(*domorder.Order) error{
		domorder.ActionPay: func(o *domorder.Order) error {
			_, err := o.MarkPaid("TX-NEW", now)
			return err
		},
		domorder.ActionDeliver: func(o *domorder.Order) error { return o.MarkDelivered(now) },
		domorder.ActionReceive: func(o *domorder.Order) error { return o.ConfirmReceipt(now) },
		domorder.ActionCancel:  func(o *domorder.Order) error { return o.Cancel(now) },
	}

	cases := []struct {
		from   domorder.Status
		action domorder.Action
		want   domorder.Status
		errIs  error
	}{
		{domorder.StatusPendingPayment, domorder.ActionPay, domorder.StatusPendingShipment, nil},
		{domorder.StatusPendingPayment, domorder.ActionDeliver, "", domorder.ErrInvalidTransition},
		{domorder.StatusPendingPayment, domorder.ActionReceive, "", domorder.ErrInvalidTransition},
		{domorder.StatusPendingPayment, domorder.ActionCancel, domorder.StatusCanceled, nil},
		{domorder.StatusPendingShipment, domorder.ActionDeliver, domorder.StatusPendingReceipt, nil},
		{domorder.StatusPendingShipment, domorder.ActionReceive, "", domorder.ErrInvalidTransition},
		{domorder.StatusPendingShipment, domorder.ActionCancel, domorder.StatusCanceled, nil},
		{domorder.StatusPendingReceipt, domorder.ActionReceive, domorder.StatusCompleted, nil},
		{domorder.StatusPendingReceipt, domorder.ActionCancel, "", domorder.ErrInvalidTransition},
		{domorder.StatusPendingReceipt, domorder.ActionDeliver, "", domorder.ErrInvalidTransition},
		{domorder.StatusCompleted, domorder.ActionCancel, "", domorder.ErrOrderAlreadyFinalized},
		{domorder.StatusCompleted, domorder.ActionDeliver, "", domorder.ErrOrderAlreadyFinalized},
		{domorder.StatusCompleted, domorder.ActionPay, "", domorder.ErrOrderAlreadyFinalized},
		{domorder.StatusCanceled, domorder.ActionPay, "", domorder.ErrOrderAlreadyFinalized},
		{domorder.StatusCanceled, domorder.ActionCancel, "", domorder.ErrOrderAlreadyFinalized},
		{domorder.StatusCanceled, domorder.ActionReceive, "", domorder.ErrOrderAlreadyFinalized},
	}

	for _, c := range cases {
		t.Run(string(c.from)+" "+string(c.action), func(t *testing.T) {
			o, err := builder.NewOrderBuilder().BuildInStatus(c.from)
			require.NoError(t, err)
			before := o.UpdatedAt()

			err = apply[c.action](o)

			if c.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, c.want, o.Status())
				assert.Equal(t, now, o.UpdatedAt())
				return
			}
			require.ErrorIs(t, err, c.errIs)
			assert.Equal(t, c.from, o.Status(), "order must be untouched")
			assert.Equal(t, before, o.UpdatedAt())

			var te *domorder.TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, c.from, te.Current)
			assert.Equal(t, c.action, te.Action)
		})
	}
}

func TestOrderMarkPaid(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("sets payment fields", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		changed, err := o.MarkPaid("TX-100", now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, o.IsPaid())
		require.NotNil(t, o.PaymentRef())
		assert.Equal(t, "TX-100", *o.PaymentRef())
		require.NotNil(t, o.PaidAt())
		assert.Equal(t, now, *o.PaidAt())
	})

	t.Run("repeat with same reference is a no-op", func(t *testing.T) {
		for _, status := range []domorder.Status{
			domorder.StatusPendingShipment,
			domorder.StatusPendingReceipt,
			domorder.StatusCompleted,
		} {
			o, err := builder.NewOrderBuilder().BuildInStatus(status)
			require.NoError(t, err)
			paidAt := *o.PaidAt()

			changed, err := o.MarkPaid("TX-1", now.Add(time.Hour))
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, status, o.Status())
			assert.Equal(t, paidAt, *o.PaidAt())
		}
	})

	t.Run("different reference on a paid order", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildInStatus(domorder.StatusPendingShipment)
		require.NoError(t, err)

		_, err = o.MarkPaid("TX-OTHER", now)
		require.ErrorIs(t, err, domorder.ErrPaymentRefMismatch)
	})

	t.Run("different reference on a completed order is finalized", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildInStatus(domorder.StatusCompleted)
		require.NoError(t, err)

		_, err = o.MarkPaid("TX-OTHER", now)
		require.ErrorIs(t, err, domorder.ErrOrderAlreadyFinalized)
		assert.NotErrorIs(t, err, domorder.ErrPaymentRefMismatch)
		assert.Equal(t, domorder.StatusCompleted, o.Status())
	})
}

func TestOrderArchive(t *testing.T) {
	now := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("terminal orders can be archived once", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildInStatus(domorder.StatusCompleted)
		require.NoError(t, err)

		require.NoError(t, o.Archive(now))
		require.NoError(t, o.Archive(now.Add(time.Hour)))
		assert.True(t, o.IsArchived())
		assert.Equal(t, now, *o.ArchivedAt())
	})

	t.Run("active orders cannot be archived", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildInStatus(domorder.StatusPendingShipment)
		require.NoError(t, err)

		err = o.Archive(now)
		require.ErrorIs(t, err, domorder.ErrInvalidTransition)
		assert.False(t, o.IsArchived())
	})
}

func TestOrderOwnership(t *testing.T) {
	owner := uuid.New()
	o, err := builder.NewOrderBuilder().WithUserID(owner).BuildDomain()
	require.NoError(t, err)

	assert.NoError(t, o.EnsureOwnedBy(owner))
	assert.ErrorIs(t, o.EnsureOwnedBy(uuid.New()), domorder.ErrNotOrderOwner)
}

func TestShippingSnapshot(t *testing.T) {
	got, err := domorder.NewShipping(" Li Si ", "+8613900000000", "Zhejiang", "Hangzhou", "Xihu", " 8 Lake Road ")
	require.NoError(t, err)

	want := domorder.Shipping{
		Name:     "Li Si",
		Phone:    "13900000000",
		Province: "Zhejiang",
		City:     "Hangzhou",
		District: "Xihu",
		Address:  "8 Lake Road",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Shipping mismatch (-want +got):\n%s", diff)
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewOrderBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
