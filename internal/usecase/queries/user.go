package queries

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.ErrUserNotFound
	ErrUserInactive = errs.New("user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

// UserReadStore returns the profile row with the caller's points balance and the number of
// unused claims on coupons that are still redeemable.
type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{readStore: readStore}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	v, _, err := ActiveUser(ctx, q.readStore, userID)
	return v, err
}

// ActiveUser loads userID and rejects disabled accounts. The role is re-read on every call
// because tokens carry the role they were issued with.
func ActiveUser(ctx context.Context, store UserReadStore, userID uuid.UUID) (*AuthorizedUserView, user.Role, error) {
	v, err := store.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if !v.IsActive {
		return nil, "", ErrUserInactive
	}
	role, err := user.NewRole(v.Role)
	if err != nil {
		return nil, "", errs.Wrap(err, "stored role")
	}
	return v, role, nil
}
