//go:build unit

package commands_test

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/product"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"
	sharedmock "github.com/bruceg7333/water-shop-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// txHarness wires a mocked unit of work whose transactions run the callback against mocked repositories.
type txHarness struct {
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	products      *sharedmock.MockProductRepository
	coupons       *sharedmock.MockCouponRepository
	claims        *sharedmock.MockClaimRepository
	orders        *sharedmock.MockOrderRepository
	points        *sharedmock.MockPointsRepository
	carts         *sharedmock.MockCartRepository
	idempotency   *sharedmock.MockIdempotencyRepository
	notifications *sharedmock.MockNotificationRepository
	users         *sharedmock.MockUserRepository
}

func newTxHarness(ctrl *gomock.Controller) *txHarness {
	h := &txHarness{
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		products:      sharedmock.NewMockProductRepository(ctrl),
		coupons:       sharedmock.NewMockCouponRepository(ctrl),
		claims:        sharedmock.NewMockClaimRepository(ctrl),
		orders:        sharedmock.NewMockOrderRepository(ctrl),
		points:        sharedmock.NewMockPointsRepository(ctrl),
		carts:         sharedmock.NewMockCartRepository(ctrl),
		idempotency:   sharedmock.NewMockIdempotencyRepository(ctrl),
		notifications: sharedmock.NewMockNotificationRepository(ctrl),
		users:         sharedmock.NewMockUserRepository(ctrl),
	}

	h.tx.EXPECT().Products().Return(h.products).AnyTimes()
	h.tx.EXPECT().Coupons().Return(h.coupons).AnyTimes()
	h.tx.EXPECT().Claims().Return(h.claims).AnyTimes()
	h.tx.EXPECT().Orders().Return(h.orders).AnyTimes()
	h.tx.EXPECT().Points().Return(h.points).AnyTimes()
	h.tx.EXPECT().Carts().Return(h.carts).AnyTimes()
	h.tx.EXPECT().Idempotency().Return(h.idempotency).AnyTimes()
	h.tx.EXPECT().Notifications().Return(h.notifications).AnyTimes()
	h.tx.EXPECT().Users().Return(h.users).AnyTimes()
	h.tx.EXPECT().DB().Return(nil).AnyTimes()

	h.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
			return fn(ctx, h.tx)
		}).AnyTimes()
	h.uow.EXPECT().WithDB(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error {
			return fn(ctx, nil)
		}).AnyTimes()
	h.uow.EXPECT().WithinReadOnly(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error {
			return fn(ctx, nil)
		}).AnyTimes()

	return h
}

// expectEvents accepts any number of outbox writes and records their topics.
func (h *txHarness) expectEvents(topics *[]string) {
	h.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.DBTX, _, topic string, _ []byte, _ time.Time) error {
			*topics = append(*topics, topic)
			return nil
		}).AnyTimes()
}

func newProduct(name, price string, stock int) *product.Product {
	return product.ReconstructProduct(uuid.New(), name, decimal.RequireFromString(price), stock, true, testNow, testNow)
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", pgx.ErrNoRows)
}
