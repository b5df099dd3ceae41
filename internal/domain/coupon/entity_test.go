//go:build unit

package coupon_test

import (
	"testing"
	"time"

	domcoupon "github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CouponBuilder)
	errIs  error
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCoupon(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewCouponBuilder().WithCode("summer10").BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, domcoupon.Code("SUMMER10"), actual.Code())
		assert.Equal(t, 1, actual.PerUserLimit())
		assert.Zero(t, actual.IssuedCount())
		assert.Zero(t, actual.UsedCount())
		assert.True(t, actual.IsActive())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "code too short",
				mutate: func(b *builder.CouponBuilder) { b.WithCode("AB") },
				errIs:  domcoupon.ErrInvalidCouponCode,
			},
			{
				name:   "code with symbols",
				mutate: func(b *builder.CouponBuilder) { b.WithCode("SAVE-10") },
				errIs:  domcoupon.ErrInvalidCouponCode,
			},
			{
				name:   "empty name",
				mutate: func(b *builder.CouponBuilder) { b.Name = " " },
				errIs:  domcoupon.ErrEmptyCouponName,
			},
			{
				name:   "percentage above 100",
				mutate: func(b *builder.CouponBuilder) { b.AsPercentage("101", nil) },
				errIs:  domcoupon.ErrInvalidDiscountPercent,
			},
			{
				name:   "negative fixed amount",
				mutate: func(b *builder.CouponBuilder) { b.AsFixed("-1") },
				errIs:  domcoupon.ErrInvalidDiscountAmount,
			},
			{
				name: "end before start",
				mutate: func(b *builder.CouponBuilder) {
					b.WithWindow(b.Now, b.Now.Add(-time.Hour))
				},
				errIs: domcoupon.ErrInvalidWindow,
			},
			{
				name:   "zero total limit",
				mutate: func(b *builder.CouponBuilder) { b.WithTotalLimit(0) },
				errIs:  domcoupon.ErrInvalidLimit,
			},
			{
				name:   "unset per-user limit defaults to one",
				mutate: func(b *builder.CouponBuilder) { b.WithPerUserLimit(0) },
			},
		})
	})

	t.Run("validity window", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NoError(t, c.ValidateAt(b.Now))
		assert.ErrorIs(t, c.ValidateAt(b.StartDate.Add(-time.Second)), domcoupon.ErrCouponNotStarted)
		assert.ErrorIs(t, c.ValidateAt(b.EndDate.Add(time.Second)), domcoupon.ErrCouponExpired)
	})

	t.Run("inactive coupon reads as expired", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c := domcoupon.ReconstructCoupon(uuid.New(), b.Name, "SUMMER10", domcoupon.Rule{Type: domcoupon.DiscountFixed, Amount: dec("5")},
			decimal.Zero, b.StartDate, b.EndDate, nil, 1, domcoupon.Counters{}, false, b.Now, b.Now)
		assert.ErrorIs(t, c.ValidateAt(b.Now), domcoupon.ErrCouponExpired)
	})

	t.Run("minimum purchase", func(t *testing.T) {
		b := builder.NewCouponBuilder().WithMinPurchase("50")
		c, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, c.ValidateForOrder(b.Now, dec("49.99")), domcoupon.ErrCouponMinimumNotMet)
		assert.NoError(t, c.ValidateForOrder(b.Now, dec("50")))
	})

	t.Run("claim capacity", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		limit := 2
		c := domcoupon.ReconstructCoupon(uuid.New(), b.Name, "SUMMER10", domcoupon.Rule{Type: domcoupon.DiscountFixed, Amount: dec("5")},
			decimal.Zero, b.StartDate, b.EndDate, &limit, 1, domcoupon.Counters{IssuedCount: 2, UsedCount: 1}, true, b.Now, b.Now)

		assert.False(t, c.HasClaimCapacity())
		assert.True(t, c.HasRedemptionCapacity())
		assert.ErrorIs(t, c.ValidateClaimable(b.Now), domcoupon.ErrCouponLimitReached)
	})
}

func TestCalculateDiscount(t *testing.T) {
	cases := []struct {
		name     string
		rule     domcoupon.Rule
		subtotal string
		want     string
	}{
		{"percentage", domcoupon.Rule{Type: domcoupon.DiscountPercentage, Amount: dec("10")}, "25.00", "2.50"},
		{"percentage capped", domcoupon.Rule{Type: domcoupon.DiscountPercentage, Amount: dec("50"), MaxDiscount: decPtr("8")}, "100", "8"},
		{"percentage rounds to cents", domcoupon.Rule{Type: domcoupon.DiscountPercentage, Amount: dec("15")}, "3.33", "0.50"},
		{"fixed", domcoupon.Rule{Type: domcoupon.DiscountFixed, Amount: dec("5")}, "25", "5"},
		{"fixed above subtotal", domcoupon.Rule{Type: domcoupon.DiscountFixed, Amount: dec("30")}, "25", "25"},
		{"zero subtotal", domcoupon.Rule{Type: domcoupon.DiscountFixed, Amount: dec("5")}, "0", "0"},
		{"full percentage", domcoupon.Rule{Type: domcoupon.DiscountPercentage, Amount: dec("100")}, "12.34", "12.34"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.rule.CalculateDiscount(dec(c.subtotal))
			assert.Truef(t, got.Equal(dec(c.want)), "want %s, got %s", c.want, got)
			assert.False(t, got.IsNegative())
			assert.True(t, got.LessThanOrEqual(dec(c.subtotal)) || dec(c.subtotal).IsZero())
		})
	}
}

func TestClaimStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, domcoupon.ClaimUsed, domcoupon.ResolveClaimStatus(true, now.Add(-time.Hour), now))
	assert.Equal(t, domcoupon.ClaimExpired, domcoupon.ResolveClaimStatus(false, now.Add(-time.Hour), now))
	assert.Equal(t, domcoupon.ClaimAvailable, domcoupon.ResolveClaimStatus(false, now.Add(time.Hour), now))

	userID := uuid.New()
	claim := domcoupon.NewClaim(uuid.New(), userID, 1, now)
	assert.NoError(t, claim.EnsureUsable(userID))
	assert.ErrorIs(t, claim.EnsureUsable(uuid.New()), domcoupon.ErrCouponAlreadyUsed)

	orderID := uuid.New()
	used := domcoupon.ReconstructClaim(claim.ID(), claim.CouponID(), userID, 1, true, &now, &orderID, now)
	assert.ErrorIs(t, used.EnsureUsable(userID), domcoupon.ErrCouponAlreadyUsed)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCouponBuilder().With(c.mutate).BuildDomain()

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
