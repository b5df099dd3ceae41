//go:build unit || e2e

package builder

import (
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// UserBuilder describes a shop account. The read model also carries the balances /auth/me
// reports, which the domain user does not own.
type UserBuilder struct {
	ID            uuid.UUID
	Email         string
	Username      string
	PasswordHash  string
	Role          user.Role
	IsActive      bool
	LastLogin     *time.Time
	RegisteredAt  time.Time
	PointsBalance int64
	UsableCoupons int
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		Username:     "buyer",
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplaceholderplace",
		Role:         user.RoleCustomer,
		IsActive:     true,
		RegisteredAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(string(b.Role))
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(b.ID, email, b.Username, b.PasswordHash, role, b.LastLogin, b.IsActive, b.RegisteredAt, b.RegisteredAt), nil
}

func (b *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:            b.ID,
		Email:         b.Email,
		Username:      b.Username,
		Role:          string(b.Role),
		IsActive:      b.IsActive,
		PointsBalance: b.PointsBalance,
		UsableCoupons: b.UsableCoupons,
	}
}

// Fluent builder methods
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithRole takes the raw string so tests can feed roles the domain rejects.
func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.Role = user.Role(role)
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

func (b *UserBuilder) WithBalances(points int64, usableCoupons int) *UserBuilder {
	b.PointsBalance = points
	b.UsableCoupons = usableCoupons
	return b
}

func (b *UserBuilder) LoggedInAt(at time.Time) *UserBuilder {
	b.LastLogin = &at
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Role = user.RoleAdmin
	return b
}

func (b *UserBuilder) AsInactive() *UserBuilder {
	b.IsActive = false
	return b
}
