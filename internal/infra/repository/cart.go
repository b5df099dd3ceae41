package repository

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/domain/cart"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
)

const (
	upsertCartLine = `
INSERT INTO cart_items (user_id, product_id, variant, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id, variant)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`

	clearCart = `DELETE FROM cart_items WHERE user_id = $1`
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) AddLines(ctx context.Context, tx db.DBTX, userID uuid.UUID, lines []cart.Line) error {
	for _, l := range cart.Merge(lines) {
		if _, err := tx.Exec(ctx, upsertCartLine, userID, l.ProductID, l.Variant, l.Quantity); err != nil {
			return infra.WrapRepoErr("failed to add cart line", err)
		}
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, clearCart, userID); err != nil {
		return infra.WrapRepoErr("failed to clear cart", err)
	}
	return nil
}
