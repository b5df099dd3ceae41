package commands

import (
	"bytes"
	"context"
	"slices"

	"github.com/bruceg7333/water-shop-api/internal/domain/cart"
	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrAdminRequired = errs.ErrAdminRequired

type OrderStatusResult struct {
	OrderID        uuid.UUID
	Status         order.Status
	Changed        bool
	PointsCredited int64
}

type OrderCommands interface {
	MarkPaid(ctx context.Context, orderID uuid.UUID, paymentRef string) (*OrderStatusResult, error)
	MarkDelivered(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error)
	ConfirmReceipt(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error)
	Cancel(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error)
	Archive(ctx context.Context, actor shared.Actor, orderID uuid.UUID) error
	BuyAgain(ctx context.Context, actor shared.Actor, orderID uuid.UUID) error
}

type orderUseCaseImpl struct {
	uow           shared.UnitOfWork
	pointsPerUnit decimal.Decimal
	clock         clock.Clock
}

func NewOrderUseCase(uow shared.UnitOfWork, pointsPerUnit decimal.Decimal, clk clock.Clock) OrderCommands {
	return &orderUseCaseImpl{
		uow:           uow,
		pointsPerUnit: pointsPerUnit,
		clock:         clk,
	}
}

// MarkPaid is safe to call repeatedly with the same payment reference.
func (uc *orderUseCaseImpl) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentRef string) (*OrderStatusResult, error) {
	var res *OrderStatusResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := loadOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		expected := o.Status()
		changed, err := o.MarkPaid(paymentRef, now)
		if err != nil {
			return err
		}
		res = &OrderStatusResult{OrderID: o.ID(), Status: o.Status(), Changed: changed}
		if !changed {
			return nil
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), o, expected); err != nil {
			return err
		}
		return enqueueOrderEvent(ctx, tx, TopicOrderPaid, o, now)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *orderUseCaseImpl) MarkDelivered(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return uc.transition(ctx, orderID, func(o *order.Order) error {
		return o.MarkDelivered(uc.clock.Now())
	}, TopicOrderShipped)
}

// ConfirmReceipt completes the order and grants its purchase points in the same transaction.
func (uc *orderUseCaseImpl) ConfirmReceipt(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error) {
	return uc.transition(ctx, orderID, func(o *order.Order) error {
		if err := o.EnsureOwnedBy(actor.UserID); err != nil {
			return err
		}
		return o.ConfirmReceipt(uc.clock.Now())
	}, TopicOrderCompleted)
}

// Cancel restocks every line and returns the applied coupon claim in the same transaction.
func (uc *orderUseCaseImpl) Cancel(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderStatusResult, error) {
	return uc.transition(ctx, orderID, func(o *order.Order) error {
		if !actor.IsAdmin() {
			if err := o.EnsureOwnedBy(actor.UserID); err != nil {
				return err
			}
		}
		return o.Cancel(uc.clock.Now())
	}, TopicOrderCanceled)
}

type transitionFunc func(o *order.Order) error

// transition runs one status change: lock the order, apply the domain rule, write with a status
// guard, then the side effects bound to the new status, then the outbox event.
func (uc *orderUseCaseImpl) transition(ctx context.Context, orderID uuid.UUID, apply transitionFunc, topic string) (*OrderStatusResult, error) {
	var res *OrderStatusResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := loadOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		expected := o.Status()
		if err := apply(o); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), o, expected); err != nil {
			return err
		}

		res = &OrderStatusResult{OrderID: o.ID(), Status: o.Status(), Changed: true}
		switch o.Status() {
		case order.StatusCanceled:
			if err := restoreOrderResources(ctx, tx, o); err != nil {
				return err
			}
		case order.StatusCompleted:
			entry, err := grantOrderPoints(ctx, tx, o.ID(), uc.pointsPerUnit, uc.clock.Now())
			if err != nil {
				return err
			}
			if entry != nil {
				res.PointsCredited = entry.Amount()
			}
		}

		return enqueueOrderEvent(ctx, tx, topic, o, uc.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Archive hides a terminal order from its owner's lists; the row is kept.
func (uc *orderUseCaseImpl) Archive(ctx context.Context, actor shared.Actor, orderID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := loadOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			if err := o.EnsureOwnedBy(actor.UserID); err != nil {
				return err
			}
		}
		wasArchived := o.IsArchived()
		if err := o.Archive(uc.clock.Now()); err != nil {
			return err
		}
		if wasArchived {
			return nil
		}
		return tx.Orders().UpdateArchived(ctx, tx.DB(), o)
	})
}

// BuyAgain copies the order's lines into the owner's cart, summing with existing cart lines.
func (uc *orderUseCaseImpl) BuyAgain(ctx context.Context, actor shared.Actor, orderID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := loadOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := o.EnsureOwnedBy(actor.UserID); err != nil {
			return err
		}
		items := o.Items()
		lines := make([]cart.Line, 0, len(items))
		for _, it := range items {
			lines = append(lines, cart.Line{ProductID: it.ProductID(), Variant: it.Variant(), Quantity: it.Quantity()})
		}
		return tx.Carts().AddLines(ctx, tx.DB(), o.UserID(), lines)
	})
}

func loadOrderForUpdate(ctx context.Context, tx shared.Tx, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().FindByIDForUpdate(ctx, tx.DB(), orderID)
	if err != nil {
		return nil, notFoundAs(err, errs.ErrOrderNotFound)
	}
	return o, nil
}

// restoreOrderResources returns stock in product id order, matching the lock order of checkout,
// and releases the coupon claim so the user can apply it again.
func restoreOrderResources(ctx context.Context, tx shared.Tx, o *order.Order) error {
	perProduct := make(map[uuid.UUID]int)
	for _, it := range o.Items() {
		perProduct[it.ProductID()] += it.Quantity()
	}
	for _, id := range sortedProductIDs(perProduct) {
		if _, err := tx.Products().Increment(ctx, tx.DB(), id, perProduct[id]); err != nil {
			return err
		}
	}

	c := o.Coupon()
	if c == nil {
		return nil
	}
	if err := tx.Claims().Release(ctx, tx.DB(), c.ClaimID, o.ID()); err != nil {
		return err
	}
	return tx.Coupons().DecrementUsed(ctx, tx.DB(), c.CouponID)
}

func sortedProductIDs(quantities map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}
