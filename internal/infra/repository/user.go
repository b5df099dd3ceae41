package repository

import (
	"context"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	userColumns = `id, email, username, password_hash, role, last_login, is_active, created_at, updated_at`

	findUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active`
	findUserByID    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	updateUserLastLogin = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx db.DBTX, email user.Email) (*user.User, error) {
	u, err := scanUser(tx.QueryRow(ctx, findUserByEmail, email.Value()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(tx.QueryRow(ctx, findUserByID, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error {
	if _, err := tx.Exec(ctx, updateUserLastLogin, userID, at); err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                          uuid.UUID
		email, username, hash, role string
		lastLogin                   *time.Time
		isActive                    bool
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(&id, &email, &username, &hash, &role, &lastLogin, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	em, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, em, username, hash, user.Role(role), lastLogin, isActive, createdAt, updatedAt), nil
}
