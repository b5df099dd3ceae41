package commands

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/domain/points"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderNotCompleted = errs.New("order is not completed")

type PointsMovementInput struct {
	UserID      uuid.UUID
	Amount      int64
	Source      string
	Title       string
	Description string
	OrderID     *uuid.UUID
	ReviewID    *uuid.UUID
	ProductID   *uuid.UUID
}

type PointsEntryResult struct {
	EntryID      uuid.UUID
	Applied      int64
	Direction    points.Direction
	BalanceAfter int64
}

type PointsCommands interface {
	Credit(ctx context.Context, in PointsMovementInput) (*PointsEntryResult, error)
	// Debit never overdraws: the applied amount may be lower than requested.
	Debit(ctx context.Context, in PointsMovementInput) (*PointsEntryResult, error)
	// CreditForCompletedOrder grants purchase points at most once per order; a repeated call returns nil.
	CreditForCompletedOrder(ctx context.Context, orderID uuid.UUID) (*PointsEntryResult, error)
}

type pointsUseCaseImpl struct {
	uow           shared.UnitOfWork
	pointsPerUnit decimal.Decimal
	clock         clock.Clock
}

func NewPointsUseCase(uow shared.UnitOfWork, pointsPerUnit decimal.Decimal, clk clock.Clock) PointsCommands {
	return &pointsUseCaseImpl{
		uow:           uow,
		pointsPerUnit: pointsPerUnit,
		clock:         clk,
	}
}

func (uc *pointsUseCaseImpl) Credit(ctx context.Context, in PointsMovementInput) (*PointsEntryResult, error) {
	return uc.move(ctx, in, points.DirectionIncrease)
}

func (uc *pointsUseCaseImpl) Debit(ctx context.Context, in PointsMovementInput) (*PointsEntryResult, error) {
	return uc.move(ctx, in, points.DirectionDecrease)
}

func (uc *pointsUseCaseImpl) move(ctx context.Context, in PointsMovementInput, dir points.Direction) (*PointsEntryResult, error) {
	m := points.Movement{
		Amount:      in.Amount,
		Direction:   dir,
		Source:      points.Source(in.Source),
		Title:       in.Title,
		Description: in.Description,
		Links: points.Links{
			OrderID:   in.OrderID,
			ReviewID:  in.ReviewID,
			ProductID: in.ProductID,
		},
	}
	if err := m.Validate(); err != nil {
		return nil, errs.Invalid(err)
	}

	var entry *points.Entry
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		entry, err = appendPoints(ctx, tx, in.UserID, m, uc.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPointsEntryResult(entry), nil
}

func (uc *pointsUseCaseImpl) CreditForCompletedOrder(ctx context.Context, orderID uuid.UUID) (*PointsEntryResult, error) {
	var entry *points.Entry
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := loadOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.Status() != order.StatusCompleted {
			return ErrOrderNotCompleted
		}
		entry, err = grantOrderPoints(ctx, tx, orderID, uc.pointsPerUnit, uc.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return toPointsEntryResult(entry), nil
}

// grantOrderPoints flips the order's points_granted flag and credits the purchase points in the
// caller's transaction. It returns nil when the flag was already set or the order earns nothing.
func grantOrderPoints(ctx context.Context, tx shared.Tx, orderID uuid.UUID, rate decimal.Decimal, now time.Time) (*points.Entry, error) {
	g, ok, err := tx.Orders().MarkPointsGranted(ctx, tx.DB(), orderID)
	if err != nil || !ok {
		return nil, err
	}
	amount := points.ForOrder(g.GrandTotal, rate)
	if amount <= 0 {
		return nil, nil
	}
	id := g.ID
	return appendPoints(ctx, tx, g.UserID, points.Movement{
		Amount:      amount,
		Direction:   points.DirectionIncrease,
		Source:      points.SourcePurchase,
		Title:       "Purchase reward",
		Description: "Order " + g.Number,
		Links:       points.Links{OrderID: &id},
	}, now)
}

// appendPoints locks the user's balance row so the entry's balance_after is computed against
// the committed balance.
func appendPoints(ctx context.Context, tx shared.Tx, userID uuid.UUID, m points.Movement, now time.Time) (*points.Entry, error) {
	balance, err := tx.Points().LockBalance(ctx, tx.DB(), userID)
	if err != nil {
		return nil, err
	}
	entry, err := points.Apply(userID, balance, m, now)
	if err != nil {
		return nil, err
	}
	if err := tx.Points().Append(ctx, tx.DB(), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func toPointsEntryResult(e *points.Entry) *PointsEntryResult {
	return &PointsEntryResult{
		EntryID:      e.ID(),
		Applied:      e.Amount(),
		Direction:    e.Direction(),
		BalanceAfter: e.BalanceAfter(),
	}
}
