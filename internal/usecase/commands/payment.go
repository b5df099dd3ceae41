package commands

import (
	"context"
	"log/slog"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/paysign"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const cashCollectedRefPrefix = "cod:"

type PaymentNotification struct {
	OrderNumber   string
	TransactionID string
	Status        string
	Signature     string
}

type PaymentStatusResult struct {
	OrderID    uuid.UUID
	Status     order.Status
	TradeState string
	Changed    bool
}

type PaymentCommands interface {
	CreatePayment(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*shared.PrepayParams, error)
	HandleCallback(ctx context.Context, n PaymentNotification) error
	SyncStatus(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*PaymentStatusResult, error)
	// MarkCashCollected records payment for a cash-on-delivery order.
	MarkCashCollected(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error)
}

// OrderNumberLookup resolves the order a gateway notification refers to.
type OrderNumberLookup interface {
	FindIDByNumber(ctx context.Context, tx db.DBTX, number string) (uuid.UUID, error)
}

type paymentUseCaseImpl struct {
	uow            shared.UnitOfWork
	gateway        shared.PaymentGateway
	orderIDs       OrderNumberLookup
	orders         OrderCommands
	orderQueries   queries.OrderQueries
	callbackSecret string
	sfg            singleflight.Group
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	orderIDs OrderNumberLookup,
	orders OrderCommands,
	orderQueries queries.OrderQueries,
	callbackSecret string,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:            uow,
		gateway:        gateway,
		orderIDs:       orderIDs,
		orders:         orders,
		orderQueries:   orderQueries,
		callbackSecret: callbackSecret,
	}
}

func (uc *paymentUseCaseImpl) CreatePayment(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*shared.PrepayParams, error) {
	v, err := uc.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod(v.PaymentMethod) != order.PaymentWeChatPay {
		return nil, errs.ErrPaymentMethodMismatch
	}
	if _, err := order.NextStatus(order.Status(v.Status), order.ActionPay); err != nil {
		return nil, err
	}

	return uc.gateway.CreatePrepay(ctx, shared.PrepayRequest{
		OrderID:     v.ID,
		OrderNumber: v.OrderNumber,
		UserID:      v.UserID,
		Amount:      v.GrandTotal,
		Description: "Order " + v.OrderNumber,
	})
}

// HandleCallback applies a signed gateway notification. Non-success results leave the order pending.
func (uc *paymentUseCaseImpl) HandleCallback(ctx context.Context, n PaymentNotification) error {
	if !paysign.Verify(uc.callbackSecret, n.Signature, n.OrderNumber, n.TransactionID, n.Status) {
		return errs.ErrInvalidSignature
	}
	if n.Status != shared.TradeStateSuccess {
		slog.Info("payment notification not successful",
			"order_number", n.OrderNumber,
			"transaction_id", n.TransactionID,
			"status", n.Status)
		return nil
	}

	var orderID uuid.UUID
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, q db.DBTX) error {
		var err error
		orderID, err = uc.orderIDs.FindIDByNumber(ctx, q, n.OrderNumber)
		return notFoundAs(err, errs.ErrOrderNotFound)
	})
	if err != nil {
		return err
	}

	res, err := uc.orders.MarkPaid(ctx, orderID, n.TransactionID)
	if err != nil {
		return err
	}
	slog.Info("payment notification applied",
		"order_id", orderID.String(),
		"transaction_id", n.TransactionID,
		"changed", res.Changed)
	return nil
}

// SyncStatus asks the gateway for the trade state and applies it. Concurrent syncs for one order
// share a single gateway query.
func (uc *paymentUseCaseImpl) SyncStatus(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*PaymentStatusResult, error) {
	v, err := uc.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	res := &PaymentStatusResult{OrderID: v.ID, Status: order.Status(v.Status)}
	if order.PaymentMethod(v.PaymentMethod) != order.PaymentWeChatPay || v.IsPaid {
		return res, nil
	}

	out, err, _ := uc.sfg.Do(v.OrderNumber, func() (any, error) {
		return uc.gateway.QueryTransaction(ctx, v.OrderNumber)
	})
	if errs.Is(err, shared.ErrTradeNotFound) {
		res.TradeState = shared.TradeStateNotExist
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	trade, ok := out.(*shared.GatewayTransaction)
	if !ok || trade == nil {
		return nil, errs.Mark(errs.New("payment gateway returned no transaction"), errs.ErrPaymentGateway)
	}
	res.TradeState = trade.TradeState
	if !trade.IsPaid() {
		return res, nil
	}

	paid, err := uc.orders.MarkPaid(ctx, v.ID, trade.TransactionID)
	if err != nil {
		return nil, err
	}
	res.Status = paid.Status
	res.Changed = paid.Changed
	return res, nil
}

func (uc *paymentUseCaseImpl) MarkCashCollected(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	v, err := uc.orderQueries.GetByID(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod(v.PaymentMethod) != order.PaymentCashOnDelivery {
		return nil, errs.ErrPaymentMethodMismatch
	}
	return uc.orders.MarkPaid(ctx, v.ID, cashCollectedRefPrefix+v.OrderNumber)
}

func (uc *paymentUseCaseImpl) ownedOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*queries.OrderView, error) {
	v, err := uc.orderQueries.GetByID(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if v.UserID != actor.UserID {
		return nil, errs.ErrOrderNotFound
	}
	return v, nil
}
