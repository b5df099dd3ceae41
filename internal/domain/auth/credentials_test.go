//go:build unit

package auth_test

import (
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/domain/auth"
	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/pkg/password"
	"github.com/bruceg7333/water-shop-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		password string
		errIs    error
	}{
		{name: "valid", email: " Buyer@Example.com ", password: "secret1"},
		{name: "malformed email", email: "buyer", password: "secret1", errIs: user.ErrInvalidEmail},
		{name: "short password", email: "buyer@example.com", password: "12345", errIs: user.ErrPasswordTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := auth.ParseCredentials(tc.email, tc.password)

			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "buyer@example.com", c.Email().Value())
		})
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := password.Hash("secret1")
	require.NoError(t, err)
	u, err := builder.NewUserBuilder().WithPasswordHash(hash).BuildDomain()
	require.NoError(t, err)

	good, err := auth.ParseCredentials("test@example.com", "secret1")
	require.NoError(t, err)
	assert.NoError(t, good.Authenticate(u))

	bad, err := auth.ParseCredentials("test@example.com", "secret2")
	require.NoError(t, err)
	assert.ErrorIs(t, bad.Authenticate(u), auth.ErrInvalidCredentials)
}
