package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartReadStore interface {
	FindLines(ctx context.Context, userID uuid.UUID) ([]CartLineView, error)
}

type CartQueries interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	repo CartReadStore
}

func NewCartQueries(repo CartReadStore) CartQueries {
	return &cartQueriesImpl{repo: repo}
}

// Get prices the cart at current product prices.
func (q *cartQueriesImpl) Get(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	lines, err := q.repo.FindLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range lines {
		lines[i].Subtotal = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		total = total.Add(lines[i].Subtotal)
	}
	if lines == nil {
		lines = []CartLineView{}
	}
	return &CartView{Lines: lines, ItemsTotal: total}, nil
}
