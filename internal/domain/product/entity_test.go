//go:build unit

package product_test

import (
	"errors"
	"testing"
	"time"

	domproduct "github.com/bruceg7333/water-shop-api/internal/domain/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestProduct(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		p, err := domproduct.NewProduct(uuid.Nil, "  Mineral Water 5L ", decimal.RequireFromString("9.999"), 10)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.Equal(t, "Mineral Water 5L", p.Name())
		assert.True(t, p.Price().Equal(decimal.RequireFromString("10.00")))
		assert.True(t, p.IsActive())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := domproduct.NewProduct(uuid.New(), " ", decimal.NewFromInt(1), 1)
		assert.ErrorIs(t, err, domproduct.ErrEmptyProductName)

		_, err = domproduct.NewProduct(uuid.New(), "Water", decimal.NewFromInt(-1), 1)
		assert.ErrorIs(t, err, domproduct.ErrNegativePrice)

		_, err = domproduct.NewProduct(uuid.New(), "Water", decimal.NewFromInt(1), -1)
		assert.ErrorIs(t, err, domproduct.ErrNegativeStock)
	})

	t.Run("purchasable check reports available stock", func(t *testing.T) {
		p, err := domproduct.NewProduct(uuid.New(), "Water", decimal.NewFromInt(1), 3)
		require.NoError(t, err)

		require.NoError(t, p.CheckPurchasable(3))

		err = p.CheckPurchasable(4)
		require.ErrorIs(t, err, domproduct.ErrInsufficientStock)
		var se *domproduct.InsufficientStockError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 4, se.Requested)
		assert.Equal(t, 3, se.Available)
	})

	t.Run("inactive product", func(t *testing.T) {
		p := domproduct.ReconstructProduct(uuid.New(), "Water", decimal.NewFromInt(1), 3, false, testTime, testTime)
		assert.ErrorIs(t, p.CheckPurchasable(1), domproduct.ErrProductInactive)
	})
}
