package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/pkg/errs"
	jwtpkg "github.com/aigallery/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginTokenTTL bounds both token kinds. Tokens are rotated on login only,
// never on validate.
const LoginTokenTTL = 24 * time.Hour

const minPasswordLength = 8

// dummyHash keeps AdminLogin constant-effort when the username is unknown.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("gallery-no-such-account"), bcrypt.DefaultCost)

// Service is the credential issuer: it mints both token kinds and
// creates/updates the backing identity records.
type Service struct {
	db       *gorm.DB
	signer   *jwtpkg.Signer
	verifier ProviderVerifier
}

func NewService(db *gorm.DB, signer *jwtpkg.Signer, verifier ProviderVerifier) *Service {
	return &Service{db: db, signer: signer, verifier: verifier}
}

// GoogleLogin verifies the provider token, upserts the session keyed by the
// Google subject id, and mints a fresh opaque login token. Display fields
// are refreshed on every call.
func (s *Service) GoogleLogin(ctx context.Context, providerToken string) (*GoogleLoginResult, error) {
	claims, err := s.verifier.Verify(ctx, providerToken)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidCredential, "Google authentication failed", err)
	}

	token, err := newLoginToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(LoginTokenTTL)

	var user models.UserModel
	err = s.db.Where("google_id = ?", claims.Subject).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"email":            claims.Email,
			"name":             claims.Name,
			"avatar_url":       claims.AvatarURL,
			"login_token":      token,
			"token_expires_at": expiresAt,
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.UserModel{
			GoogleID:       claims.Subject,
			Email:          claims.Email,
			Name:           claims.Name,
			AvatarURL:      claims.AvatarURL,
			LoginToken:     token,
			TokenExpiresAt: expiresAt,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	result := &GoogleLoginResult{User: &user, Token: token}
	if admin := AdminForUser(s.db, &user); admin != nil && !admin.Disabled() {
		result.Admin = admin
	}
	return result, nil
}

// AdminLogin checks the password, mints a signed 24h claim, and records the
// login time. Lookup miss and hash mismatch are indistinguishable to the
// caller and cost the same bcrypt comparison.
func (s *Service) AdminLogin(username, password string) (*AdminLoginResult, error) {
	var admin models.AdminModel
	err := s.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindInvalidCredential, "Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, errs.New(errs.KindInvalidCredential, "Invalid credentials")
	}
	if admin.Disabled() {
		return nil, errs.New(errs.KindAccountDisabled, "Account is disabled")
	}

	token, err := s.signer.Sign(admin.ID, LoginTokenTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&admin).Update("last_login_at", &now).Error; err != nil {
		return nil, err
	}
	admin.LastLoginAt = &now

	return &AdminLoginResult{Admin: &admin, Token: token}, nil
}

// CreateAdmin persists a new operator account with a bcrypt password hash.
func (s *Service) CreateAdmin(username, password string) (*models.AdminModel, error) {
	if len(password) < minPasswordLength {
		return nil, errs.New(errs.KindWeakCredential, "Password must be at least 8 characters long")
	}

	var count int64
	if err := s.db.Model(&models.AdminModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.New(errs.KindDuplicateUsername, "Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := models.AdminModel{
		Username:     username,
		PasswordHash: string(hash),
		Status:       models.AdminStatusActive,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// newLoginToken mints an opaque, randomly-unguessable bearer string. It is
// stored and compared by exact value only.
func newLoginToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
