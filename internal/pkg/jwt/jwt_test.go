package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	s := NewSigner("test-secret")

	token, err := s.Sign("admin-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewSigner("secret-a").Sign("admin-1", time.Hour)
	require.NoError(t, err)

	_, err = NewSigner("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	s := NewSigner("test-secret")
	token, err := s.Sign("admin-1", -time.Minute)
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		AdminID: "admin-1",
		Role:    RoleAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSigner("test-secret").Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsNonAdminClaims(t *testing.T) {
	secret := "test-secret"
	tests := []struct {
		name   string
		claims Claims
	}{
		{"missing admin id", Claims{Role: RoleAdmin}},
		{"wrong role", Claims{AdminID: "admin-1", Role: "viewer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.claims.ExpiresAt = jwtlib.NewNumericDate(time.Now().Add(time.Hour))
			raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, tt.claims)
			token, err := raw.SignedString([]byte(secret))
			require.NoError(t, err)

			_, err = NewSigner(secret).Parse(token)
			assert.Error(t, err)
		})
	}
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewSigner("test-secret").Parse("not-a-jwt")
	assert.Error(t, err)
}
