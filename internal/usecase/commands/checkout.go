package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/cart"
	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/pkg/clock"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const checkoutEndpoint = "POST /api/orders"

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Variant   string    `json:"variant"`
}

type ShippingInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Address  string `json:"address"`
}

type CheckoutInput struct {
	UserID         uuid.UUID      `json:"user_id"`
	Items          []CheckoutItem `json:"items"`
	Shipping       ShippingInput  `json:"shipping"`
	PaymentMethod  string         `json:"payment_method"`
	Remark         string         `json:"remark"`
	CouponClaimID  *uuid.UUID     `json:"coupon_claim_id,omitempty"`
	CouponCode     *string        `json:"coupon_code,omitempty"`
	IdempotencyKey *uuid.UUID     `json:"-"`
}

type CheckoutResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow            shared.UnitOfWork
	idempotency    shared.IdempotencyRepository
	orderQueries   queries.OrderQueries
	shippingFee    order.ShippingFeeCalculator
	idempotencyTTL time.Duration
	clock          clock.Clock
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	idempotency shared.IdempotencyRepository,
	orderQueries queries.OrderQueries,
	shippingFee order.ShippingFeeCalculator,
	idempotencyTTL time.Duration,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:            uow,
		idempotency:    idempotency,
		orderQueries:   orderQueries,
		shippingFee:    shippingFee,
		idempotencyTTL: idempotencyTTL,
		clock:          clk,
	}
}

// checkoutDraft is the validated request, independent of any stored state.
type checkoutDraft struct {
	lines    []cart.Line
	shipping order.Shipping
	method   order.PaymentMethod
	remark   order.Remark
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	draft, err := newCheckoutDraft(in)
	if err != nil {
		return nil, errs.Invalid(err)
	}

	actor := shared.Actor{UserID: in.UserID}
	if in.IdempotencyKey == nil {
		orderID, err := uc.placeOrder(ctx, in, draft, nil)
		if err != nil {
			return nil, err
		}
		return uc.result(ctx, actor, orderID, false)
	}

	key := *in.IdempotencyKey
	requestHash := calculateRequestHash(in)
	replayID, err := uc.beginIdempotent(ctx, key, in.UserID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return uc.result(ctx, actor, *replayID, true)
	}

	orderID, err := uc.placeOrder(ctx, in, draft, &key)
	if err != nil {
		uc.releaseIdempotencyKey(ctx, key, in.UserID)
		return nil, err
	}
	return uc.result(ctx, actor, orderID, false)
}

func newCheckoutDraft(in CheckoutInput) (*checkoutDraft, error) {
	if len(in.Items) == 0 {
		return nil, order.ErrEmptyItems
	}
	lines := make([]cart.Line, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		l, err := cart.NewLine(it.ProductID, it.Variant, it.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	s := in.Shipping
	shipping, err := order.NewShipping(s.Name, s.Phone, s.Province, s.City, s.District, s.Address)
	if err != nil {
		return nil, err
	}
	method := order.PaymentMethod(in.PaymentMethod)
	if !method.IsValid() {
		return nil, order.ErrInvalidPaymentMethod
	}
	remark, err := order.NewRemark(in.Remark)
	if err != nil {
		return nil, err
	}

	return &checkoutDraft{
		lines:    cart.Merge(lines),
		shipping: shipping,
		method:   method,
		remark:   remark,
	}, nil
}

// beginIdempotent registers the key as processing outside the order transaction so that a
// concurrent retry observes it. A non-nil order id means the request already completed.
func (uc *checkoutUseCaseImpl) beginIdempotent(ctx context.Context, key, userID uuid.UUID, requestHash string) (*uuid.UUID, error) {
	now := uc.clock.Now()
	expiresAt := now.Add(uc.idempotencyTTL)

	var replayID *uuid.UUID
	err := uc.uow.WithDB(ctx, func(ctx context.Context, db db.DBTX) error {
		repo := uc.idempotency
		inserted, err := repo.TryInsert(ctx, db, key, userID, checkoutEndpoint, requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if inserted {
			return nil
		}

		existing, err := repo.Get(ctx, db, key, userID)
		if err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}

		if existing.IsExpired(now) {
			claimed, err := repo.ClaimExpired(ctx, db, key, userID, requestHash, expiresAt)
			if err != nil {
				return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
			}
			if !claimed {
				return errs.ErrIdempotencyInProgress
			}
			return nil
		}

		if existing.RequestHash != requestHash {
			return errs.ErrDuplicateRequest
		}

		switch existing.Status {
		case shared.IdempotencyCompleted:
			if existing.ResultOrderID == nil {
				return errs.New("completed request missing result order ID")
			}
			replayID = existing.ResultOrderID
			return nil
		case shared.IdempotencyProcessing:
			return errs.ErrIdempotencyInProgress
		default:
			return errs.New("invalid idempotency key status")
		}
	})
	if err != nil {
		return nil, err
	}
	return replayID, nil
}

// releaseIdempotencyKey lets the client retry a failed checkout with the same key.
func (uc *checkoutUseCaseImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := uc.uow.WithDB(ctx, func(ctx context.Context, db db.DBTX) error {
		return uc.idempotency.Delete(ctx, db, key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key, "user_id", userID, "error", err.Error())
	}
}

func (uc *checkoutUseCaseImpl) placeOrder(ctx context.Context, in CheckoutInput, draft *checkoutDraft, key *uuid.UUID) (uuid.UUID, error) {
	var orderID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		items, err := uc.reserveStock(ctx, tx, draft.lines)
		if err != nil {
			return err
		}

		applied, err := uc.resolveCoupon(ctx, tx, in, items, now)
		if err != nil {
			return err
		}

		services := &order.Services{Clock: uc.clock, ShippingFee: uc.shippingFee}
		o, err := order.NewOrder(services, in.UserID, items, draft.shipping, draft.method, draft.remark, applied)
		if err != nil {
			return errs.Invalid(err)
		}
		if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			return err
		}

		if applied != nil {
			if err := tx.Claims().MarkUsed(ctx, tx.DB(), applied.ClaimID, in.UserID, o.ID(), now); err != nil {
				return err
			}
			if err := tx.Coupons().IncrementUsed(ctx, tx.DB(), applied.CouponID); err != nil {
				return err
			}
		}

		if err := tx.Carts().Clear(ctx, tx.DB(), in.UserID); err != nil {
			return err
		}
		if err := enqueueOrderEvent(ctx, tx, TopicOrderCreated, o, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if key != nil {
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *key, in.UserID, o.ID()); err != nil {
				return err
			}
		}

		orderID = o.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}

// reserveStock prices the lines at current product prices and decrements stock per product,
// in product id order so concurrent checkouts lock rows in the same sequence.
func (uc *checkoutUseCaseImpl) reserveStock(ctx context.Context, tx shared.Tx, lines []cart.Line) ([]order.LineItem, error) {
	perProduct := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		perProduct[l.ProductID] += l.Quantity
	}
	ids := sortedProductIDs(perProduct)

	products, err := tx.Products().FindByIDs(ctx, tx.DB(), ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		p, ok := products[id]
		if !ok || !p.IsActive() {
			return nil, errs.Wrap(errs.ErrProductNotFound, "product "+id.String())
		}
		if err := p.CheckPurchasable(perProduct[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		if _, err := tx.Products().Decrement(ctx, tx.DB(), id, perProduct[id]); err != nil {
			return nil, err
		}
	}

	items := make([]order.LineItem, 0, len(lines))
	for _, l := range lines {
		p := products[l.ProductID]
		it, err := order.NewLineItem(p.ID(), p.Name(), p.Price(), l.Quantity, l.Variant)
		if err != nil {
			return nil, errs.Invalid(err)
		}
		items = append(items, it)
	}
	return items, nil
}

// resolveCoupon validates the coupon against the pre-discount items total and returns the
// frozen discount, or nil when no coupon was supplied.
func (uc *checkoutUseCaseImpl) resolveCoupon(
	ctx context.Context,
	tx shared.Tx,
	in CheckoutInput,
	items []order.LineItem,
	now time.Time,
) (*order.AppliedCoupon, error) {
	if in.CouponClaimID == nil && in.CouponCode == nil {
		return nil, nil
	}

	c, claim, err := uc.findCouponAndClaim(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	itemsTotal := decimal.Zero
	for _, it := range items {
		itemsTotal = itemsTotal.Add(it.Subtotal())
	}
	if err := c.ValidateForOrder(now, itemsTotal); err != nil {
		return nil, err
	}
	if !c.HasRedemptionCapacity() {
		return nil, coupon.ErrCouponLimitReached
	}

	return &order.AppliedCoupon{
		CouponID: c.ID(),
		ClaimID:  claim.ID(),
		Code:     c.Code().String(),
		Discount: c.CalculateDiscount(itemsTotal),
	}, nil
}

func (uc *checkoutUseCaseImpl) findCouponAndClaim(ctx context.Context, tx shared.Tx, in CheckoutInput) (*coupon.Coupon, *coupon.Claim, error) {
	if in.CouponClaimID != nil {
		claim, err := tx.Claims().FindByID(ctx, tx.DB(), *in.CouponClaimID)
		if err != nil {
			return nil, nil, notFoundAs(err, errs.ErrClaimNotFound)
		}
		if claim.UserID() != in.UserID {
			return nil, nil, errs.ErrClaimNotFound
		}
		if err := claim.EnsureUsable(in.UserID); err != nil {
			return nil, nil, err
		}
		c, err := tx.Coupons().FindByID(ctx, tx.DB(), claim.CouponID())
		if err != nil {
			return nil, nil, notFoundAs(err, errs.ErrCouponNotFound)
		}
		return c, claim, nil
	}

	code, err := coupon.NewCouponCode(*in.CouponCode)
	if err != nil {
		return nil, nil, errs.ErrCouponNotFound
	}
	c, err := tx.Coupons().FindByCode(ctx, tx.DB(), code)
	if err != nil {
		return nil, nil, notFoundAs(err, errs.ErrCouponNotFound)
	}
	claim, err := tx.Claims().FindUnusedByCoupon(ctx, tx.DB(), c.ID(), in.UserID)
	if err == nil {
		return c, claim, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, nil, err
	}
	held, err := tx.Claims().CountByUser(ctx, tx.DB(), c.ID(), in.UserID)
	if err != nil {
		return nil, nil, err
	}
	if held > 0 {
		return nil, nil, coupon.ErrCouponAlreadyUsed
	}
	return nil, nil, errs.ErrClaimNotFound
}

func (uc *checkoutUseCaseImpl) result(ctx context.Context, actor shared.Actor, orderID uuid.UUID, replayed bool) (*CheckoutResult, error) {
	view, err := uc.orderQueries.GetByID(ctx, actor, orderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CheckoutResult{Order: view, IsReplayed: replayed}, nil
}

func calculateRequestHash(in CheckoutInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// notFoundAs maps a repository not-found to the usecase sentinel and passes other errors through.
func notFoundAs(err, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return err
}
