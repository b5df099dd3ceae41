//go:build unit || e2e

package builder

import (
	reqdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/request"
	"github.com/bruceg7333/water-shop-api/tests/common/dbtest"
)

// LoginBuilder defaults to the credentials dbtest.CreateTestUser seeds.
type LoginBuilder struct {
	email    string
	password string
}

func NewLoginBuilder() *LoginBuilder {
	return &LoginBuilder{email: "buyer@example.com", password: dbtest.TestPassword}
}

func (b *LoginBuilder) WithEmail(email string) *LoginBuilder {
	b.email = email
	return b
}

func (b *LoginBuilder) WithPassword(password string) *LoginBuilder {
	b.password = password
	return b
}

func (b *LoginBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: b.email, Password: b.password}
}
