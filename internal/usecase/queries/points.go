package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PointsReadStore interface {
	// Balance returns 0 for users without a balance row.
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, userID uuid.UUID, after *Keyset, limit int32) ([]*PointsEntryView, error)
}

type PointsQueries interface {
	Balance(ctx context.Context, userID uuid.UUID) (*PointsBalanceView, error)
	ListEntries(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*PointsEntryView, *Cursor, error)
}

type pointsQueriesImpl struct {
	repo PointsReadStore
}

func NewPointsQueries(repo PointsReadStore) PointsQueries {
	return &pointsQueriesImpl{repo: repo}
}

func (q *pointsQueriesImpl) Balance(ctx context.Context, userID uuid.UUID) (*PointsBalanceView, error) {
	balance, err := q.repo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PointsBalanceView{UserID: userID, Balance: balance}, nil
}

func (q *pointsQueriesImpl) ListEntries(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*PointsEntryView, *Cursor, error) {
	after, err := decodeKeyset(cursor)
	if err != nil {
		return nil, nil, err
	}
	limit = ValidateLimit(limit)
	rows, err := q.repo.ListEntries(ctx, userID, after, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}
	page, next := paginate(rows, limit, func(e *PointsEntryView) (time.Time, uuid.UUID) {
		return e.CreatedAt, e.ID
	})
	return page, next, nil
}
