package readstore

import (
	"context"

	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const findAuthorizedUser = `
SELECT u.id, u.email, u.username, u.role, u.is_active,
       COALESCE(pb.balance, 0),
       (SELECT count(*)
        FROM user_coupons uc
        JOIN coupons c ON c.id = uc.coupon_id
        WHERE uc.user_id = u.id AND NOT uc.is_used AND c.is_active AND c.end_date > now())
FROM users u
LEFT JOIN point_balances pb ON pb.user_id = u.id
WHERE u.id = $1`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findAuthorizedUser, id).Scan(
		&v.ID, &v.Email, &v.Username, &v.Role, &v.IsActive, &v.PointsBalance, &v.UsableCoupons,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load user profile", err)
	}
	return &v, nil
}
