package shared

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/cart"
	"github.com/bruceg7333/water-shop-api/internal/domain/coupon"
	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/domain/points"
	"github.com/bruceg7333/water-shop-api/internal/domain/product"
	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single statements outside an explicit transaction
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Products() ProductRepository
	Coupons() CouponRepository
	Claims() ClaimRepository
	Orders() OrderRepository
	Points() PointsRepository
	Carts() CartRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	DB() db.DBTX
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error)
	// Decrement returns *product.InsufficientStockError when stock < qty.
	Decrement(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) (int, error)
	Increment(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) (int, error)
}

type CouponRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*coupon.Coupon, error)
	FindByCode(ctx context.Context, tx db.DBTX, code coupon.Code) (*coupon.Coupon, error)
	// IncrementIssued returns coupon.ErrCouponLimitReached when no claim capacity is left.
	IncrementIssued(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	// IncrementUsed returns coupon.ErrCouponLimitReached when no redemption capacity is left.
	IncrementUsed(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	DecrementUsed(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ClaimRepository interface {
	Create(ctx context.Context, tx db.DBTX, claim *coupon.Claim) error
	CountByUser(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (int, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*coupon.Claim, error)
	FindUnusedByCoupon(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (*coupon.Claim, error)
	// MarkUsed returns coupon.ErrCouponAlreadyUsed when the claim is used or not owned by userID.
	MarkUsed(ctx context.Context, tx db.DBTX, claimID, userID, orderID uuid.UUID, usedAt time.Time) error
	Release(ctx context.Context, tx db.DBTX, claimID, orderID uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	FindIDByNumber(ctx context.Context, tx db.DBTX, number string) (uuid.UUID, error)
	// UpdateStatus persists o only if the stored status still equals expected.
	UpdateStatus(ctx context.Context, tx db.DBTX, o *order.Order, expected order.Status) error
	UpdateArchived(ctx context.Context, tx db.DBTX, o *order.Order) error
	// MarkPointsGranted flips points_granted for a completed order; ok is false if it was already set.
	MarkPointsGranted(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*GrantableOrder, bool, error)
}

type PointsRepository interface {
	// LockBalance creates the balance row if missing and locks it for the rest of the transaction.
	LockBalance(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error)
	Append(ctx context.Context, tx db.DBTX, e *points.Entry) error
}

type CartRepository interface {
	AddLines(ctx context.Context, tx db.DBTX, userID uuid.UUID, lines []cart.Line) error
	Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID, orderID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	Delete(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, tx db.DBTX, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error
}
