package queries

import (
	"context"
	"strings"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errs.ErrOrderNotFound
	ErrInvalidStatusFilter = errs.New("invalid order status filter")
	ErrInvalidDateRange    = errs.New("invalid order date range")
	ErrAdminRequired       = errs.ErrAdminRequired
)

// OrderFilters narrows order lists. Keyword and the date range are honoured by the admin list only.
type OrderFilters struct {
	Status  *order.Status
	Keyword string
	From    *time.Time
	To      *time.Time
}

func (f OrderFilters) validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return ErrInvalidStatusFilter
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return ErrInvalidDateRange
	}
	return nil
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	// ListByUser returns the owner's non-archived orders, newest first, starting after the keyset.
	ListByUser(ctx context.Context, userID uuid.UUID, status *order.Status, after *Keyset, limit int32) ([]*OrderListItem, error)
	// ListAll returns every order, archived ones included, newest first.
	ListAll(ctx context.Context, filters OrderFilters, after *Keyset, limit int32) ([]*OrderListItem, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, actor shared.Actor, filters OrderFilters, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
	ListAll(ctx context.Context, actor shared.Actor, filters OrderFilters, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
}

type orderQueriesImpl struct {
	repo OrderReadStore
}

func NewOrderQueries(repo OrderReadStore) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

// GetByID hides orders of other users behind not-found unless the caller is an admin.
func (q *orderQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*OrderView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if v.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrOrderNotFound
	}
	return v, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, actor shared.Actor, filters OrderFilters, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	if err := filters.validate(); err != nil {
		return nil, nil, err
	}
	after, err := decodeKeyset(cursor)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	rows, err := q.repo.ListByUser(ctx, actor.UserID, filters.Status, after, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}
	page, next := paginate(rows, limit, func(o *OrderListItem) (time.Time, uuid.UUID) {
		return o.CreatedAt, o.ID
	})
	return page, next, nil
}

// ListAll is the back-office view over all customers' orders.
func (q *orderQueriesImpl) ListAll(ctx context.Context, actor shared.Actor, filters OrderFilters, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	if !actor.IsAdmin() {
		return nil, nil, ErrAdminRequired
	}
	if err := filters.validate(); err != nil {
		return nil, nil, err
	}
	filters.Keyword = strings.TrimSpace(filters.Keyword)
	after, err := decodeKeyset(cursor)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	rows, err := q.repo.ListAll(ctx, filters, after, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}
	page, next := paginate(rows, limit, func(o *OrderListItem) (time.Time, uuid.UUID) {
		return o.CreatedAt, o.ID
	})
	return page, next, nil
}
