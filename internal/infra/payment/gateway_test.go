//go:build unit

package payment_test

import (
	"context"
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/infra/payment"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/paysign"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"
	sharedmock "github.com/bruceg7333/water-shop-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const secret = "test-callback-secret"

func prepayRequest(number string) shared.PrepayRequest {
	return shared.PrepayRequest{
		OrderID:     uuid.New(),
		OrderNumber: number,
		UserID:      uuid.New(),
		Amount:      decimal.RequireFromString("25.00"),
		Description: "Order " + number,
	}
}

func TestSandboxGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("prepay registers an unpaid trade", func(t *testing.T) {
		g := payment.NewSandboxGateway(secret)

		params, err := g.CreatePrepay(ctx, prepayRequest("WS1"))
		require.NoError(t, err)
		assert.NotEmpty(t, params.PrepayID)
		assert.Equal(t, "prepay_id="+params.PrepayID, params.Package)
		assert.True(t, paysign.Verify(secret, params.PaySign, params.TimeStamp, params.NonceStr, params.Package))

		trade, err := g.QueryTransaction(ctx, "WS1")
		require.NoError(t, err)
		assert.Equal(t, "NOTPAY", trade.TradeState)
		assert.False(t, trade.IsPaid())
	})

	t.Run("settle signs a success notification", func(t *testing.T) {
		g := payment.NewSandboxGateway(secret)
		_, err := g.CreatePrepay(ctx, prepayRequest("WS2"))
		require.NoError(t, err)

		txID, sig, err := g.Settle("WS2")
		require.NoError(t, err)
		assert.True(t, paysign.Verify(secret, sig, "WS2", txID, shared.TradeStateSuccess))

		again, _, err := g.Settle("WS2")
		require.NoError(t, err)
		assert.Equal(t, txID, again)

		trade, err := g.QueryTransaction(ctx, "WS2")
		require.NoError(t, err)
		assert.True(t, trade.IsPaid())
		assert.Equal(t, txID, trade.TransactionID)
	})

	t.Run("unknown order", func(t *testing.T) {
		g := payment.NewSandboxGateway(secret)

		trade, err := g.QueryTransaction(ctx, "WS404")
		require.NoError(t, err)
		assert.Equal(t, shared.TradeStateNotExist, trade.TradeState)
		assert.False(t, trade.IsPaid())

		_, _, err = g.Settle("WS404")
		assert.ErrorIs(t, err, payment.ErrUnknownOrder)
	})

	t.Run("canceled context", func(t *testing.T) {
		g := payment.NewSandboxGateway(secret)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := g.CreatePrepay(canceled, prepayRequest("WS3"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBreakerGateway(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Payment

	t.Run("passes results through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockPaymentGateway(ctrl)
		next.EXPECT().QueryTransaction(gomock.Any(), "WS1").
			Return(&shared.GatewayTransaction{OrderNumber: "WS1", TradeState: "NOTPAY"}, nil)

		trade, err := payment.NewBreakerGateway(next, cfg).QueryTransaction(ctx, "WS1")

		require.NoError(t, err)
		assert.Equal(t, "NOTPAY", trade.TradeState)
	})

	t.Run("provider failures are marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockPaymentGateway(ctrl)
		next.EXPECT().CreatePrepay(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

		_, err := payment.NewBreakerGateway(next, cfg).CreatePrepay(ctx, prepayRequest("WS1"))

		assert.True(t, errs.Is(err, errs.ErrPaymentGateway))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("opens after consecutive failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockPaymentGateway(ctrl)
		next.EXPECT().QueryTransaction(gomock.Any(), "WS1").Return(nil, assert.AnError).Times(int(cfg.BreakerFailureTrigger))
		g := payment.NewBreakerGateway(next, cfg)

		for range cfg.BreakerFailureTrigger {
			_, err := g.QueryTransaction(ctx, "WS1")
			require.Error(t, err)
		}

		// the provider is no longer called while open
		_, err := g.QueryTransaction(ctx, "WS1")
		assert.True(t, errs.Is(err, errs.ErrPaymentGateway))
		assert.NotErrorIs(t, err, assert.AnError)
	})

	t.Run("breakers are independent per call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockPaymentGateway(ctrl)
		next.EXPECT().QueryTransaction(gomock.Any(), gomock.Any()).Return(nil, assert.AnError).Times(int(cfg.BreakerFailureTrigger))
		next.EXPECT().CreatePrepay(gomock.Any(), gomock.Any()).Return(&shared.PrepayParams{PrepayID: "p"}, nil)
		g := payment.NewBreakerGateway(next, cfg)

		for range cfg.BreakerFailureTrigger {
			_, _ = g.QueryTransaction(ctx, "WS1")
		}

		params, err := g.CreatePrepay(ctx, prepayRequest("WS1"))
		require.NoError(t, err)
		assert.Equal(t, "p", params.PrepayID)
	})

	t.Run("missing trades do not trip the breaker", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockPaymentGateway(ctrl)
		next.EXPECT().QueryTransaction(gomock.Any(), "NEVERPREPAID").
			Return(nil, shared.ErrTradeNotFound).Times(int(cfg.BreakerFailureTrigger) + 1)
		next.EXPECT().QueryTransaction(gomock.Any(), "PAID1").
			Return(&shared.GatewayTransaction{OrderNumber: "PAID1", TradeState: shared.TradeStateSuccess}, nil)
		g := payment.NewBreakerGateway(next, cfg)

		for range cfg.BreakerFailureTrigger + 1 {
			_, err := g.QueryTransaction(ctx, "NEVERPREPAID")
			assert.ErrorIs(t, err, shared.ErrTradeNotFound)
			assert.False(t, errs.Is(err, errs.ErrPaymentGateway))
		}

		trade, err := g.QueryTransaction(ctx, "PAID1")
		require.NoError(t, err)
		assert.True(t, trade.IsPaid())
	})

	t.Run("sandbox polling before prepay keeps the breaker closed", func(t *testing.T) {
		sandbox := payment.NewSandboxGateway(secret)
		_, err := sandbox.CreatePrepay(ctx, prepayRequest("PAID1"))
		require.NoError(t, err)
		_, _, err = sandbox.Settle("PAID1")
		require.NoError(t, err)
		g := payment.NewBreakerGateway(sandbox, cfg)

		for range cfg.BreakerFailureTrigger + 1 {
			trade, err := g.QueryTransaction(ctx, "NEVERPREPAID")
			require.NoError(t, err)
			assert.Equal(t, shared.TradeStateNotExist, trade.TradeState)
		}

		trade, err := g.QueryTransaction(ctx, "PAID1")
		require.NoError(t, err)
		assert.True(t, trade.IsPaid())
	})
}
