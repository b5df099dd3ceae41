package readstore

import (
	"context"
	"errors"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	getPointsBalance = `SELECT balance FROM point_balances WHERE user_id = $1`

	listPointEntries = `
SELECT id, amount, direction, source, title, description, order_id, review_id, product_id, balance_after, created_at
FROM point_entries
WHERE user_id = $1
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4`
)

type PointsReadStore struct {
	db db.DBTX
}

func NewPointsReadStore(db db.DBTX) *PointsReadStore {
	return &PointsReadStore{db: db}
}

func (r *PointsReadStore) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, getPointsBalance, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, infra.WrapRepoErr("failed to get points balance", err)
	}
	return balance, nil
}

func (r *PointsReadStore) ListEntries(ctx context.Context, userID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.PointsEntryView, error) {
	args := []any{userID, nil, nil, limit}
	if after != nil {
		args[1], args[2] = after.CreatedAt, after.ID
	}
	rows, err := r.db.Query(ctx, listPointEntries, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list points entries", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.PointsEntryView, error) {
		var e queries.PointsEntryView
		err := row.Scan(&e.ID, &e.Amount, &e.Direction, &e.Source, &e.Title, &e.Description,
			&e.OrderID, &e.ReviewID, &e.ProductID, &e.BalanceAfter, &e.CreatedAt)
		return &e, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan points entries", err)
	}
	return entries, nil
}
