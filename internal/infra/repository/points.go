package repository

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/domain/points"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
)

const (
	ensurePointBalance = `
INSERT INTO point_balances (user_id, balance)
VALUES ($1, 0)
ON CONFLICT (user_id) DO NOTHING`

	lockPointBalance = `SELECT balance FROM point_balances WHERE user_id = $1 FOR UPDATE`

	updatePointBalance = `UPDATE point_balances SET balance = $2, updated_at = $3 WHERE user_id = $1`

	insertPointEntry = `
INSERT INTO point_entries (id, user_id, amount, direction, source, title, description,
                           order_id, review_id, product_id, balance_after, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
)

type PointsRepository struct{}

func NewPointsRepository() *PointsRepository {
	return &PointsRepository{}
}

func (r *PointsRepository) LockBalance(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	if _, err := tx.Exec(ctx, ensurePointBalance, userID); err != nil {
		return 0, infra.WrapRepoErr("failed to ensure points balance", err)
	}
	var balance int64
	if err := tx.QueryRow(ctx, lockPointBalance, userID).Scan(&balance); err != nil {
		return 0, infra.WrapRepoErr("failed to lock points balance", err)
	}
	return balance, nil
}

// Append writes the entry and moves the cached balance to the entry's balance_after in the same transaction.
func (r *PointsRepository) Append(ctx context.Context, tx db.DBTX, e *points.Entry) error {
	links := e.Links()
	_, err := tx.Exec(ctx, insertPointEntry,
		e.ID(), e.UserID(), e.Amount(), e.Direction().String(), e.Source().String(), e.Title(), e.Description(),
		links.OrderID, links.ReviewID, links.ProductID, e.BalanceAfter(), e.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert points entry", err)
	}
	if _, err := tx.Exec(ctx, updatePointBalance, e.UserID(), e.BalanceAfter(), e.CreatedAt()); err != nil {
		return infra.WrapRepoErr("failed to update points balance", err)
	}
	return nil
}
