//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	queriesmock "github.com/bruceg7333/water-shop-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCouponQueries_ListMine(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	claims := func() []*queries.ClaimView {
		return []*queries.ClaimView{
			{ID: uuid.New(), Code: "FRESH", EndDate: now.Add(time.Hour)},
			{ID: uuid.New(), Code: "SPENT", EndDate: now.Add(time.Hour), IsUsed: true},
			{ID: uuid.New(), Code: "STALE", EndDate: now.Add(-time.Hour)},
		}
	}

	testCases := []struct {
		name      string
		status    *coupon.ClaimStatus
		wantCodes []string
	}{
		{name: "all claims", wantCodes: []string{"FRESH", "SPENT", "STALE"}},
		{name: "available only", status: ptrTo(coupon.ClaimAvailable), wantCodes: []string{"FRESH"}},
		{name: "used only", status: ptrTo(coupon.ClaimUsed), wantCodes: []string{"SPENT"}},
		{name: "expired only", status: ptrTo(coupon.ClaimExpired), wantCodes: []string{"STALE"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockCouponReadStore(ctrl)
			store.EXPECT().ListClaimsByUser(ctx, userID).Return(claims(), nil)

			got, err := queries.NewCouponQueries(store, clock.NewMockClock(now)).ListMine(ctx, userID, tc.status)

			require.NoError(t, err)
			codes := make([]string, 0, len(got))
			for _, c := range got {
				codes = append(codes, c.Code)
				assert.NotEmpty(t, c.Status)
			}
			assert.Equal(t, tc.wantCodes, codes)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := queries.NewCouponQueries(queriesmock.NewMockCouponReadStore(ctrl), clock.NewMockClock(now)).
			ListMine(ctx, userID, ptrTo(coupon.ClaimStatus("pending")))

		assert.ErrorIs(t, err, queries.ErrInvalidClaimStatus)
	})
}

func TestCartQueries_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("prices lines", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockCartReadStore(ctrl)
		store.EXPECT().FindLines(ctx, userID).Return([]queries.CartLineView{
			{ProductName: "Spring Water", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 4},
			{ProductName: "Sparkling", UnitPrice: decimal.RequireFromString("3.25"), Quantity: 1},
		}, nil)

		cart, err := queries.NewCartQueries(store).Get(ctx, userID)

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("10.00").Equal(cart.Lines[0].Subtotal))
		assert.True(t, decimal.RequireFromString("13.25").Equal(cart.ItemsTotal))
	})

	t.Run("empty cart renders an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockCartReadStore(ctrl)
		store.EXPECT().FindLines(ctx, userID).Return(nil, nil)

		cart, err := queries.NewCartQueries(store).Get(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, cart.Lines)
		assert.True(t, cart.ItemsTotal.IsZero())
	})
}

func ptrTo[T any](v T) *T {
	return &v
}
