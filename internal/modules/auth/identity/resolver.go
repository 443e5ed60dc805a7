package identity

import (
	"time"

	"github.com/aigallery/core/internal/models"
	jwtpkg "github.com/aigallery/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

// Resolver maps an opaque bearer string to exactly one of
// {admin, user, none}. It never returns an error: any lookup or
// verification failure resolves to "absent" and the calling boundary
// picks the HTTP status.
type Resolver struct {
	db     *gorm.DB
	signer *jwtpkg.Signer
}

func NewResolver(db *gorm.DB, signer *jwtpkg.Signer) *Resolver {
	return &Resolver{db: db, signer: signer}
}

// ResolveAdmin resolves token to a non-disabled admin account, or nil.
//
// The signed claim is tried first and fails closed on any verification or
// decode error; only then is the token treated as a user login token whose
// session email may bridge to an admin username. The order matters: the two
// credential kinds are not confusable by format alone.
func (r *Resolver) ResolveAdmin(token string) *models.AdminModel {
	if token == "" {
		return nil
	}

	if claims, err := r.signer.Parse(token); err == nil {
		var admin models.AdminModel
		if err := r.db.Where("id = ?", claims.AdminID).First(&admin).Error; err == nil && !admin.Disabled() {
			return &admin
		}
		// A verified claim for a missing or disabled account does not fall
		// through to the user-token branch.
		return nil
	}

	user := r.ResolveUser(token)
	if user == nil {
		return nil
	}
	admin := AdminForUser(r.db, user)
	if admin == nil || admin.Disabled() {
		return nil
	}
	return admin
}

// ResolveUser resolves token to an unexpired user session, or nil. Expiry
// is checked lazily here; expired rows persist until the next login
// overwrites them.
func (r *Resolver) ResolveUser(token string) *models.UserModel {
	if token == "" {
		return nil
	}
	var user models.UserModel
	if err := r.db.Where("login_token = ?", token).First(&user).Error; err != nil {
		return nil
	}
	if !user.TokenExpiresAt.IsZero() && user.TokenExpiresAt.Before(time.Now()) {
		return nil
	}
	return &user
}

// Resolve classifies token as a user session, an admin credential, or
// nothing. User resolution is attempted first so a session whose email
// bridges to an admin still reports as a user session here; ResolveAdmin is
// the authorization-side entry point.
func (r *Resolver) Resolve(token string) Identity {
	if user := r.ResolveUser(token); user != nil {
		return Identity{Kind: KindUser, User: user}
	}
	if admin := r.ResolveAdmin(token); admin != nil {
		return Identity{Kind: KindAdmin, Admin: admin}
	}
	return Identity{Kind: KindNone}
}

// AdminForUser bridges a user session to an admin account by matching the
// session email against the admin username. This is a heuristic join, not a
// foreign key: admin accounts predate federated login, so an admin whose
// Google email differs from the stored username is never recognized.
func AdminForUser(db *gorm.DB, user *models.UserModel) *models.AdminModel {
	if user == nil || user.Email == "" {
		return nil
	}
	var admin models.AdminModel
	if err := db.Where("username = ?", user.Email).First(&admin).Error; err != nil {
		return nil
	}
	return &admin
}
