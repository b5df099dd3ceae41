package auth

import (
	"errors"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/pkg/password"
)

// ErrInvalidCredentials covers every login failure that must not reveal which half was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Credentials is a well-formed login form. It does not prove the account exists.
type Credentials struct {
	email    user.Email
	password user.Password
}

func ParseCredentials(email, plain string) (Credentials, error) {
	e, err := user.NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := user.NewPassword(plain)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

// Authenticate checks the password against u's stored hash. Whether u may sign in is
// decided by the caller.
func (c Credentials) Authenticate(u *user.User) error {
	if err := password.Compare(u.PasswordHash(), c.password.Value()); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
