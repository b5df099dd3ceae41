package readstore

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listCartLines = `
SELECT ci.product_id, p.name, p.price, p.stock, p.is_active, ci.variant, ci.quantity
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at, ci.product_id, ci.variant`

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(db db.DBTX) *CartReadStore {
	return &CartReadStore{db: db}
}

func (r *CartReadStore) FindLines(ctx context.Context, userID uuid.UUID) ([]queries.CartLineView, error) {
	rows, err := r.db.Query(ctx, listCartLines, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart lines", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.CartLineView, error) {
		var l queries.CartLineView
		err := row.Scan(&l.ProductID, &l.ProductName, &l.UnitPrice, &l.Stock, &l.IsActive, &l.Variant, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan cart lines", err)
	}
	return lines, nil
}
