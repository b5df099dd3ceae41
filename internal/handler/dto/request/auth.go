package request

import (
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
)

// LoginRequest bounds the password by what bcrypt accepts; the domain applies the same limits.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

func (r *LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{Email: r.Email, Password: r.Password}
}

// RefreshRequest is only read when the refresh token cookie is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
