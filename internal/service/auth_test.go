package service

import (
	"testing"
	"volunteer-hub/internal/config"
	"volunteer-hub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthConfig() *config.ServerConfig {
	return &config.ServerConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
	}
}

func TestRegisterFirstAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, newAuthConfig())

	first, err := svc.Register("Org Admin", "admin@example.org", "secret123", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.Role)

	// Once any user exists a requested admin role is demoted.
	second, err := svc.Register("Second", "second@example.org", "secret123", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganiser, second.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, newAuthConfig())

	_, err := svc.Register("Alice", "alice@example.org", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Register("Alice Again", "alice@example.org", "secret123", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cfg := newAuthConfig()
	svc := NewAuthService(env.userRepo, cfg)

	_, err := svc.Register("Alice", "alice@example.org", "secret123", "")
	require.NoError(t, err)

	token, user, err := svc.Login("alice@example.org", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", user.Email)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice@example.org", claims["email"])
	assert.Equal(t, models.RoleOrganiser, claims["role"])
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, newAuthConfig())

	_, err := svc.Register("Alice", "alice@example.org", "secret123", "")
	require.NoError(t, err)

	_, _, err = svc.Login("alice@example.org", "wrong")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Login("nobody@example.org", "secret123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBootstrapAdminIdempotent(t *testing.T) {
	env := newTestEnv(t)
	cfg := newAuthConfig()
	cfg.AdminEmail = "root@example.org"
	cfg.AdminPassword = "bootstrap"
	svc := NewAuthService(env.userRepo, cfg)

	require.NoError(t, svc.BootstrapAdmin())
	require.NoError(t, svc.BootstrapAdmin())

	count, err := env.userRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	admin, err := env.userRepo.GetByEmail("root@example.org")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())
}
