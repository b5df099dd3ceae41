//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens with the secret of a running test server, bypassing the login flow.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) signer(access time.Duration) *jwt.Service {
	return jwt.NewService(h.cfg.Secret, access, h.cfg.RefreshTokenDuration)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.signer(h.cfg.AccessTokenDuration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) GenerateRefreshToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.signer(h.cfg.AccessTokenDuration).GenerateRefreshToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs an access token whose expiry already lies in the past.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.signer(-time.Minute).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
