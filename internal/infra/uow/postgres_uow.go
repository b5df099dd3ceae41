package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/infra/repository"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries  = 3
	backoffBase = 100 * time.Millisecond
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// Repositories groups the stateless repositories handed to every transaction.
type Repositories struct {
	Products      *repository.ProductRepository
	Coupons       *repository.CouponRepository
	Claims        *repository.ClaimRepository
	Orders        *repository.OrderRepository
	Points        *repository.PointsRepository
	Carts         *repository.CartRepository
	Idempotency   *repository.IdempotencyRepository
	Notifications *repository.NotificationRepository
	Users         *repository.UserRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Products:      repository.NewProductRepository(),
		Coupons:       repository.NewCouponRepository(),
		Claims:        repository.NewClaimRepository(),
		Orders:        repository.NewOrderRepository(),
		Points:        repository.NewPointsRepository(),
		Carts:         repository.NewCartRepository(),
		Idempotency:   repository.NewIdempotencyRepository(),
		Notifications: repository.NewNotificationRepository(),
		Users:         repository.NewUserRepository(),
	}
}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	repos *Repositories
	begin func(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, repos *Repositories) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		repos: repos,
		begin: pool.BeginTx,
		retry: retryPolicy{maxRetries: maxRetries, backoffBase: backoffBase},
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; row locks and
// conditional updates inside fn provide the rest.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, u.pool)
}

// Each attempt opens and closes its own transaction, so no defer piles up across retries.
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.run(ctx, func(ctx context.Context) error {
		pgxTx, err := u.begin(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx, repos: u.repos})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
		return err
	})
}

// retryPolicy reruns an attempt while it fails with a serialization failure, a deadlock or
// a lost compare-and-set. Running out of retries marks the last error ErrTransientFailure.
type retryPolicy struct {
	maxRetries  int
	backoffBase time.Duration
}

func (p retryPolicy) run(ctx context.Context, attempt func(ctx context.Context) error) error {
	for n := 0; ; n++ {
		err := attempt(ctx)
		if err == nil || !infra.IsRetryable(err) {
			return err
		}
		if n == p.maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", n+1,
				"error", err.Error())
			return errs.Mark(err, errs.ErrTransientFailure)
		}

		waitTime := calculateBackoff(n, p.backoffBase)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", n+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

var _ shared.Tx = (*pgTx)(nil)

// pgTx hands the stateless repositories to a use case together with the open transaction
// they must run on.
type pgTx struct {
	dbtx  pgx.Tx
	repos *Repositories
}

func (t *pgTx) Products() shared.ProductRepository           { return t.repos.Products }
func (t *pgTx) Coupons() shared.CouponRepository             { return t.repos.Coupons }
func (t *pgTx) Claims() shared.ClaimRepository               { return t.repos.Claims }
func (t *pgTx) Orders() shared.OrderRepository               { return t.repos.Orders }
func (t *pgTx) Points() shared.PointsRepository              { return t.repos.Points }
func (t *pgTx) Carts() shared.CartRepository                 { return t.repos.Carts }
func (t *pgTx) Idempotency() shared.IdempotencyRepository    { return t.repos.Idempotency }
func (t *pgTx) Notifications() shared.NotificationRepository { return t.repos.Notifications }
func (t *pgTx) Users() shared.UserRepository                 { return t.repos.Users }
func (t *pgTx) DB() db.DBTX                                  { return t.dbtx }

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db db.DBTX) error) error {
	pgxTx, err := u.begin(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}
