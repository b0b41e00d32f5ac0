package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarfea/dashboard-api/internal/config"
	jwtinfra "github.com/tarfea/dashboard-api/internal/infrastructure/jwt"
)

// newTestProvider generates a throwaway RSA key pair on disk and loads a
// Provider from it, the same way production loads PEM files.
func newTestProvider(t *testing.T, expiry time.Duration) *jwtinfra.Provider {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private_key.pem")
	pubPath := filepath.Join(dir, "public_key.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	provider, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         expiry,
	})
	require.NoError(t, err)
	return provider
}

func authTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User-ID", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeaderIsUnauthorized(t *testing.T) {
	provider := newTestProvider(t, 2*time.Hour)
	handler := Auth(provider)(authTestHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token provided")
}

func TestAuth_InvalidTokenIsBadRequest(t *testing.T) {
	provider := newTestProvider(t, 2*time.Hour)
	handler := Auth(provider)(authTestHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Present-but-bad tokens are 400, only a missing header is 401.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_ExpiredTokenIsBadRequest(t *testing.T) {
	provider := newTestProvider(t, -time.Minute)
	handler := Auth(provider)(authTestHandler(t))

	token, err := provider.Sign("u1", "s1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	provider := newTestProvider(t, 2*time.Hour)
	handler := Auth(provider)(authTestHandler(t))

	token, err := provider.Sign("u1", "s1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Header().Get("X-User-ID"))
}
