package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"volunteer-hub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": float64(7),
		"email":   "alice@example.org",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticatorPlacesIdentityInContext(t *testing.T) {
	auth := NewAuthenticator("test-secret")

	var gotID uint
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetUserRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/volunteers", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", models.RoleOrganiser))
	rec := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), gotID)
	assert.Equal(t, models.RoleOrganiser, gotRole)
}

func TestAuthenticatorRejectsMissingAndBadTokens(t *testing.T) {
	auth := NewAuthenticator("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", models.RoleOrganiser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/volunteers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.Middleware(next).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	auth := NewAuthenticator("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := auth.Middleware(AdminOnly(next))

	req := httptest.NewRequest("POST", "/api/admin/import", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", models.RoleOrganiser))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest("POST", "/api/admin/import", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", models.RoleAdmin))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
