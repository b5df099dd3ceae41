//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/jwt"
	"github.com/bruceg7333/water-shop-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	tokens := jwt.NewService("validator-secret", time.Hour, 24*time.Hour)
	validator := usecase.NewTokenValidator(tokens)
	userID := uuid.New()

	t.Run("admin access token", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		actor, err := validator.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, userID, actor.UserID)
		assert.True(t, actor.IsAdmin())
	})

	t.Run("customer access token", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		actor, err := validator.ValidateToken(token)

		require.NoError(t, err)
		assert.False(t, actor.IsAdmin())
	})

	rejected := map[string]func(t *testing.T) string{
		"refresh token": func(t *testing.T) string {
			token, err := tokens.GenerateRefreshToken(userID, user.RoleCustomer)
			require.NoError(t, err)
			return token
		},
		"expired token": func(t *testing.T) string {
			token, err := jwt.NewService("validator-secret", -time.Minute, time.Hour).GenerateToken(userID, user.RoleCustomer)
			require.NoError(t, err)
			return token
		},
		"token without subject": func(t *testing.T) string {
			token, err := tokens.GenerateToken(uuid.Nil, user.RoleCustomer)
			require.NoError(t, err)
			return token
		},
		"garbage": func(*testing.T) string { return "a.b.c" },
	}
	for name, tokenFor := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := validator.ValidateToken(tokenFor(t))

			require.Error(t, err)
			assert.True(t, errs.Is(err, usecase.ErrInvalidAccessToken))
		})
	}
}
