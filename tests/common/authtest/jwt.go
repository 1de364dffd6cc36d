//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/cookie"
	"storefront-api/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the account service does, signed with the shared secret.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, -time.Minute).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateForeignToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService("some-other-secret", time.Hour).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func AccessTokenCookie(token string) *http.Cookie {
	return &http.Cookie{Name: cookie.AccessTokenCookieName, Value: token}
}
