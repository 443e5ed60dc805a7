package identity

import (
	"context"
	"testing"

	"github.com/aigallery/core/internal/models"
	jwtpkg "github.com/aigallery/core/internal/pkg/jwt"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.AdminModel{}, &models.FileModel{}))
	return db
}

// fakeVerifier returns fixed provider claims, or an error when broken.
type fakeVerifier struct {
	claims *ProviderClaims
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*ProviderClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newTestService(t *testing.T, verifier ProviderVerifier) (*Service, *gorm.DB, *jwtpkg.Signer) {
	t.Helper()
	db := newTestDB(t)
	signer := jwtpkg.NewSigner("test-secret")
	return NewService(db, signer, verifier), db, signer
}
