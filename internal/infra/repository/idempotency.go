package repository

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/pkg/pgconv"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	tryInsertIdempotencyKey = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING`

	getIdempotencyKey = `
SELECT key, user_id, endpoint, status, request_hash, result_order_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

	completeIdempotencyKey = `
UPDATE idempotency_keys
SET status = 'completed', result_order_id = $3, updated_at = now()
WHERE key = $1 AND user_id = $2`

	claimExpiredIdempotencyKey = `
UPDATE idempotency_keys
SET status = 'processing', request_hash = $3, result_order_id = NULL, expires_at = $4, updated_at = now()
WHERE key = $1 AND user_id = $2 AND expires_at <= now()`

	deleteIdempotencyKey = `DELETE FROM idempotency_keys WHERE key = $1 AND user_id = $2 AND status = 'processing'`
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, tryInsertIdempotencyKey, key, userID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec       shared.IdempotencyRecord
		resultID  pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, getIdempotencyKey, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.Status, &rec.RequestHash, &resultID, &expiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.ResultOrderID = pgconv.UUIDPtrFromPgtype(resultID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID, orderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, completeIdempotencyKey, key, userID, pgconv.UUIDToPgtype(orderID)); err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, claimExpiredIdempotencyKey, key, userID, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete drops a processing key so a failed request can be retried with the same key.
func (r *IdempotencyRepository) Delete(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, deleteIdempotencyKey, key, userID); err != nil {
		return infra.WrapRepoErr("failed to delete idempotency key", err)
	}
	return nil
}
