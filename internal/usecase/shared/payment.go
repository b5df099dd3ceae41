package shared

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TradeStateSuccess  = "SUCCESS"
	TradeStateNotExist = "NOTEXIST"
)

// ErrTradeNotFound is the provider saying it has no trade for the order, typically because
// prepay was never requested. It is an answer, not an outage.
var ErrTradeNotFound = errors.New("payment trade not found")

// PaymentGateway is the outbound payment provider.
type PaymentGateway interface {
	CreatePrepay(ctx context.Context, req PrepayRequest) (*PrepayParams, error)
	QueryTransaction(ctx context.Context, orderNumber string) (*GatewayTransaction, error)
}

type PrepayRequest struct {
	OrderID     uuid.UUID
	OrderNumber string
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
}

// PrepayParams are handed to the client to launch the payment sheet.
type PrepayParams struct {
	PrepayID  string `json:"prepay_id"`
	TimeStamp string `json:"time_stamp"`
	NonceStr  string `json:"nonce_str"`
	Package   string `json:"package"`
	SignType  string `json:"sign_type"`
	PaySign   string `json:"pay_sign"`
}

type GatewayTransaction struct {
	OrderNumber   string
	TransactionID string
	TradeState    string
}

func (t *GatewayTransaction) IsPaid() bool {
	return t.TradeState == TradeStateSuccess
}
