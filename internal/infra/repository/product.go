package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/product"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	findProductsByIDs = `
SELECT id, name, price, stock, is_active, created_at, updated_at
FROM products
WHERE id = ANY($1)`

	decrementStock = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
RETURNING stock`

	incrementStock = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1
RETURNING stock`

	findProductStock = `SELECT name, stock FROM products WHERE id = $1`
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) FindByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error) {
	rows, err := tx.Query(ctx, findProductsByIDs, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find products", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*product.Product, len(ids))
	for rows.Next() {
		var (
			id                   uuid.UUID
			name                 string
			price                decimal.Decimal
			stock                int
			isActive             bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &name, &price, &stock, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		out[id] = product.ReconstructProduct(id, name, price, stock, isActive, createdAt, updatedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return out, nil
}

// Decrement is the authoritative stock check: the row is only touched when enough stock remains.
func (r *ProductRepository) Decrement(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) (int, error) {
	var remaining int
	err := tx.QueryRow(ctx, decrementStock, productID, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, infra.WrapRepoErr("failed to decrement stock", err)
	}

	var (
		name      string
		available int
	)
	if err := tx.QueryRow(ctx, findProductStock, productID).Scan(&name, &available); err != nil {
		return 0, infra.WrapRepoErr("product not found", err)
	}
	return 0, &product.InsufficientStockError{
		ProductID:   productID,
		ProductName: name,
		Requested:   qty,
		Available:   available,
	}
}

func (r *ProductRepository) Increment(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) (int, error) {
	var stock int
	if err := tx.QueryRow(ctx, incrementStock, productID, qty).Scan(&stock); err != nil {
		return 0, infra.WrapRepoErr("failed to increment stock", err)
	}
	return stock, nil
}
