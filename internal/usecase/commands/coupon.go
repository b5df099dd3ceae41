package commands

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDuplicateCouponCode = errs.New("coupon code already exists")

type ClaimResult struct {
	ClaimID  uuid.UUID
	CouponID uuid.UUID
	Slot     int
}

// CouponPreview is what a claim would take off a subtotal at checkout time.
type CouponPreview struct {
	CouponID uuid.UUID
	ClaimID  uuid.UUID
	Name     string
	Code     string
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Payable  decimal.Decimal
}

// DistributionResult reports one recipient of an admin distribution; Err is nil when a claim was made.
type DistributionResult struct {
	UserID  uuid.UUID
	ClaimID uuid.UUID
	Err     error
}

type CreateCouponInput struct {
	Name         string
	Code         string
	DiscountType string
	Amount       decimal.Decimal
	MinPurchase  decimal.Decimal
	MaxDiscount  *decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	TotalLimit   *int
	PerUserLimit int
}

type CouponCommands interface {
	TryClaim(ctx context.Context, userID, couponID uuid.UUID) (*ClaimResult, error)
	ClaimByCode(ctx context.Context, userID uuid.UUID, code string) (*ClaimResult, error)
	CreateCoupon(ctx context.Context, actor shared.Actor, in CreateCouponInput) (uuid.UUID, error)
	Verify(ctx context.Context, userID, couponID uuid.UUID, subtotal decimal.Decimal) (*CouponPreview, error)
	Distribute(ctx context.Context, actor shared.Actor, couponID uuid.UUID, userIDs []uuid.UUID) ([]DistributionResult, error)
}

type couponUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCouponUseCase(uow shared.UnitOfWork, clk clock.Clock) CouponCommands {
	return &couponUseCaseImpl{uow: uow, clock: clk}
}

func (uc *couponUseCaseImpl) TryClaim(ctx context.Context, userID, couponID uuid.UUID) (*ClaimResult, error) {
	var res *ClaimResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Coupons().FindByID(ctx, tx.DB(), couponID)
		if err != nil {
			return notFoundAs(err, errs.ErrCouponNotFound)
		}
		res, err = uc.claim(ctx, tx, userID, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *couponUseCaseImpl) ClaimByCode(ctx context.Context, userID uuid.UUID, code string) (*ClaimResult, error) {
	cc, err := coupon.NewCouponCode(code)
	if err != nil {
		return nil, errs.ErrCouponNotFound
	}

	var res *ClaimResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Coupons().FindByCode(ctx, tx.DB(), cc)
		if err != nil {
			return notFoundAs(err, errs.ErrCouponNotFound)
		}
		res, err = uc.claim(ctx, tx, userID, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// claim takes the next per-user slot. The conditional issued_count increment guards the global
// limit, and the unique (coupon, user, slot) index rejects a concurrent claim of the same slot.
func (uc *couponUseCaseImpl) claim(ctx context.Context, tx shared.Tx, userID uuid.UUID, c *coupon.Coupon) (*ClaimResult, error) {
	now := uc.clock.Now()
	if err := c.ValidateClaimable(now); err != nil {
		return nil, err
	}

	held, err := tx.Claims().CountByUser(ctx, tx.DB(), c.ID(), userID)
	if err != nil {
		return nil, err
	}
	if held >= c.PerUserLimit() {
		return nil, coupon.ErrCouponAlreadyUsed
	}

	if err := tx.Coupons().IncrementIssued(ctx, tx.DB(), c.ID()); err != nil {
		return nil, err
	}

	cl := coupon.NewClaim(c.ID(), userID, held+1, now)
	if err := tx.Claims().Create(ctx, tx.DB(), cl); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, coupon.ErrCouponAlreadyUsed
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	return &ClaimResult{ClaimID: cl.ID(), CouponID: c.ID(), Slot: cl.Slot()}, nil
}

func (uc *couponUseCaseImpl) CreateCoupon(ctx context.Context, actor shared.Actor, in CreateCouponInput) (uuid.UUID, error) {
	if !actor.IsAdmin() {
		return uuid.Nil, ErrAdminRequired
	}

	c, err := coupon.NewCoupon(coupon.Params{
		Name:         in.Name,
		Code:         in.Code,
		Type:         coupon.DiscountType(in.DiscountType),
		Amount:       in.Amount,
		MinPurchase:  in.MinPurchase,
		MaxDiscount:  in.MaxDiscount,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		TotalLimit:   in.TotalLimit,
		PerUserLimit: in.PerUserLimit,
	}, uc.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Coupons().Create(ctx, tx.DB(), c); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateCouponCode
			}
			return err
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return c.ID(), nil
}

// Verify runs the checkout coupon checks against subtotal without redeeming anything.
func (uc *couponUseCaseImpl) Verify(ctx context.Context, userID, couponID uuid.UUID, subtotal decimal.Decimal) (*CouponPreview, error) {
	if subtotal.IsNegative() {
		return nil, errs.Invalid(errs.New("subtotal must not be negative"))
	}

	var res *CouponPreview
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Coupons().FindByID(ctx, tx.DB(), couponID)
		if err != nil {
			return notFoundAs(err, errs.ErrCouponNotFound)
		}
		claim, err := tx.Claims().FindUnusedByCoupon(ctx, tx.DB(), couponID, userID)
		if err != nil {
			return notFoundAs(err, errs.ErrClaimNotFound)
		}
		if err := c.ValidateForOrder(uc.clock.Now(), subtotal); err != nil {
			return err
		}
		if !c.HasRedemptionCapacity() {
			return coupon.ErrCouponLimitReached
		}

		discount := c.CalculateDiscount(subtotal)
		res = &CouponPreview{
			CouponID: c.ID(),
			ClaimID:  claim.ID(),
			Name:     c.Name(),
			Code:     c.Code().String(),
			Subtotal: subtotal,
			Discount: discount,
			Payable:  subtotal.Sub(discount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Distribute claims the coupon on behalf of each user. Every user gets its own transaction, so
// one refusal does not undo the others; only errors that stop the whole run are returned.
func (uc *couponUseCaseImpl) Distribute(ctx context.Context, actor shared.Actor, couponID uuid.UUID, userIDs []uuid.UUID) ([]DistributionResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	out := make([]DistributionResult, 0, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}

		res, err := uc.TryClaim(ctx, userID, couponID)
		switch {
		case errs.Is(err, errs.ErrCouponNotFound):
			return nil, err
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			out = append(out, DistributionResult{UserID: userID, Err: err})
		default:
			out = append(out, DistributionResult{UserID: userID, ClaimID: res.ClaimID})
		}
	}
	return out, nil
}
