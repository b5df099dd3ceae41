package payment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/sony/gobreaker/v2"
)

// BreakerGateway trips after consecutive provider failures and fails fast while open.
type BreakerGateway struct {
	next    shared.PaymentGateway
	cfg     config.PaymentConfig
	prepay  *gobreaker.CircuitBreaker[*shared.PrepayParams]
	queries *gobreaker.CircuitBreaker[*shared.GatewayTransaction]
}

func NewBreakerGateway(next shared.PaymentGateway, cfg config.PaymentConfig) *BreakerGateway {
	return &BreakerGateway{
		next:    next,
		cfg:     cfg,
		prepay:  gobreaker.NewCircuitBreaker[*shared.PrepayParams](breakerSettings("payment-prepay", cfg)),
		queries: gobreaker.NewCircuitBreaker[*shared.GatewayTransaction](breakerSettings("payment-query", cfg)),
	}
}

func breakerSettings(name string, cfg config.PaymentConfig) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureTrigger
		},
		IsSuccessful: providerHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("payment circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}
}

func (g *BreakerGateway) CreatePrepay(ctx context.Context, req shared.PrepayRequest) (*shared.PrepayParams, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.GatewayTimeout)
	defer cancel()
	res, err := g.prepay.Execute(func() (*shared.PrepayParams, error) {
		return g.next.CreatePrepay(ctx, req)
	})
	return res, markGatewayErr(err)
}

func (g *BreakerGateway) QueryTransaction(ctx context.Context, orderNumber string) (*shared.GatewayTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.GatewayTimeout)
	defer cancel()
	res, err := g.queries.Execute(func() (*shared.GatewayTransaction, error) {
		return g.next.QueryTransaction(ctx, orderNumber)
	})
	return res, markGatewayErr(err)
}

// providerHealthy decides what counts against the breaker. A missing trade or a caller that
// gave up says nothing about the provider.
func providerHealthy(err error) bool {
	return err == nil ||
		errs.Is(err, shared.ErrTradeNotFound) ||
		errors.Is(err, context.Canceled)
}

func markGatewayErr(err error) error {
	if err == nil || errs.Is(err, shared.ErrTradeNotFound) || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errs.Mark(err, errs.ErrPaymentGateway)
	}
	return errs.Mark(errs.Wrap(err, "payment gateway call failed"), errs.ErrPaymentGateway)
}
