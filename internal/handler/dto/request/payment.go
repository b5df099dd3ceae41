package request

import (
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

type PaymentCallbackRequest struct {
	OrderNumber   string `json:"order_number" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
}

func (r *PaymentCallbackRequest) ToNotification() commands.PaymentNotification {
	return commands.PaymentNotification{
		OrderNumber:   r.OrderNumber,
		TransactionID: r.TransactionID,
		Status:        r.Status,
		Signature:     r.Signature,
	}
}
