package components

import (
	"github.com/bruceg7333/water-shop-api/internal/infra/payment"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewSandboxGateway,
		NewPaymentGateway,
	),
)

func NewSandboxGateway(cfg config.Config) *payment.SandboxGateway {
	return payment.NewSandboxGateway(cfg.Payment.CallbackSecret)
}

// NewPaymentGateway puts the circuit breaker in front of the provider adapter.
func NewPaymentGateway(provider *payment.SandboxGateway, cfg config.Config) shared.PaymentGateway {
	return payment.NewBreakerGateway(provider, cfg.Payment)
}
