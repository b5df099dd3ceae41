package response

import (
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentStatusResponse struct {
	OrderID    uuid.UUID `json:"order_id"`
	Status     string    `json:"status"`
	TradeState string    `json:"trade_state,omitempty"`
	Changed    bool      `json:"changed"`
}

func FromPaymentStatusResult(r *commands.PaymentStatusResult) *PaymentStatusResponse {
	return &PaymentStatusResponse{
		OrderID:    r.OrderID,
		Status:     r.Status.String(),
		TradeState: r.TradeState,
		Changed:    r.Changed,
	}
}
