package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func googleClaims() *ProviderClaims {
	return &ProviderClaims{
		Subject:   "google-sub-1",
		Email:     "alice@example.com",
		Name:      "Alice",
		AvatarURL: "https://example.com/alice.png",
	}
}

func TestGoogleLogin_CreatesUser(t *testing.T) {
	svc, db, _ := newTestService(t, &fakeVerifier{claims: googleClaims()})

	result, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "google-sub-1", result.User.GoogleID)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)
	assert.Nil(t, result.Admin)

	var count int64
	db.Model(&models.UserModel{}).Count(&count)
	assert.EqualValues(t, 1, count)

	assert.WithinDuration(t, time.Now().Add(LoginTokenTTL), result.User.TokenExpiresAt, time.Minute)
}

func TestGoogleLogin_RepeatedLoginRotatesToken(t *testing.T) {
	svc, db, _ := newTestService(t, &fakeVerifier{claims: googleClaims()})

	first, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)
	second, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, first.User.ID, second.User.ID)

	// One row per Google subject, the old token no longer resolves.
	var count int64
	db.Model(&models.UserModel{}).Count(&count)
	assert.EqualValues(t, 1, count)

	resolver := NewResolver(db, nil)
	assert.Nil(t, resolver.ResolveUser(first.Token))
	assert.NotNil(t, resolver.ResolveUser(second.Token))
}

func TestGoogleLogin_RefreshesProfileFields(t *testing.T) {
	verifier := &fakeVerifier{claims: googleClaims()}
	svc, _, _ := newTestService(t, verifier)

	_, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)

	verifier.claims = &ProviderClaims{
		Subject:   "google-sub-1",
		Email:     "alice@example.com",
		Name:      "Alice Updated",
		AvatarURL: "https://example.com/new.png",
	}
	result, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", result.User.Name)
	assert.Equal(t, "https://example.com/new.png", result.User.AvatarURL)
}

func TestGoogleLogin_VerifierFailure(t *testing.T) {
	svc, db, _ := newTestService(t, &fakeVerifier{err: errors.New("bad token")})

	_, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidCredential, errs.KindOf(err))

	var count int64
	db.Model(&models.UserModel{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestGoogleLogin_BridgesToAdmin(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeVerifier{claims: googleClaims()})

	_, err := svc.CreateAdmin("alice@example.com", "password-123")
	require.NoError(t, err)

	result, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)
	require.NotNil(t, result.Admin)
	assert.Equal(t, "alice@example.com", result.Admin.Username)
}

func TestGoogleLogin_DisabledAdminDoesNotBridge(t *testing.T) {
	svc, db, _ := newTestService(t, &fakeVerifier{claims: googleClaims()})

	admin, err := svc.CreateAdmin("alice@example.com", "password-123")
	require.NoError(t, err)
	require.NoError(t, db.Model(admin).Update("status", models.AdminStatusDisabled).Error)

	result, err := svc.GoogleLogin(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Nil(t, result.Admin)
}

func TestAdminLogin(t *testing.T) {
	svc, _, signer := newTestService(t, nil)

	_, err := svc.CreateAdmin("operator", "password-123")
	require.NoError(t, err)

	result, err := svc.AdminLogin("operator", "password-123")
	require.NoError(t, err)
	require.NotNil(t, result.Admin)
	assert.NotNil(t, result.Admin.LastLoginAt)

	claims, err := signer.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Admin.ID, claims.AdminID)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.CreateAdmin("operator", "password-123")
	require.NoError(t, err)

	_, err = svc.AdminLogin("operator", "wrong-password")
	assert.Equal(t, errs.KindInvalidCredential, errs.KindOf(err))
}

func TestAdminLogin_UnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.AdminLogin("nobody", "password-123")
	assert.Equal(t, errs.KindInvalidCredential, errs.KindOf(err))
}

func TestAdminLogin_DisabledAccount(t *testing.T) {
	svc, db, _ := newTestService(t, nil)

	admin, err := svc.CreateAdmin("operator", "password-123")
	require.NoError(t, err)
	require.NoError(t, db.Model(admin).Update("status", models.AdminStatusDisabled).Error)

	_, err = svc.AdminLogin("operator", "password-123")
	assert.Equal(t, errs.KindAccountDisabled, errs.KindOf(err))
}

func TestCreateAdmin(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	admin, err := svc.CreateAdmin("operator", "password-123")
	require.NoError(t, err)
	assert.Equal(t, models.AdminStatusActive, admin.Status)
	assert.NotEqual(t, "password-123", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password-123")))
}

func TestCreateAdmin_ShortPassword(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.CreateAdmin("operator", "short")
	assert.Equal(t, errs.KindWeakCredential, errs.KindOf(err))
}

func TestCreateAdmin_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.CreateAdmin("operator", "password-123")
	require.NoError(t, err)

	_, err = svc.CreateAdmin("operator", "different-pass")
	assert.Equal(t, errs.KindDuplicateUsername, errs.KindOf(err))
}
