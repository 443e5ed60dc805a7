package identity

import "github.com/aigallery/core/internal/models"

// IdentityKind tags the outcome of bearer resolution.
type IdentityKind string

const (
	KindNone  IdentityKind = "none"
	KindUser  IdentityKind = "user"
	KindAdmin IdentityKind = "admin"
)

// Identity is the tagged result of resolving one opaque bearer string.
// Exactly one of User/Admin is set, matching Kind.
type Identity struct {
	Kind  IdentityKind
	User  *models.UserModel
	Admin *models.AdminModel
}

// GoogleLoginResult carries the refreshed session, the newly minted login
// token, and the bridged admin account when one matches.
type GoogleLoginResult struct {
	User  *models.UserModel
	Token string
	Admin *models.AdminModel
}

// AdminLoginResult carries the account and its signed claim.
type AdminLoginResult struct {
	Admin *models.AdminModel
	Token string
}

type googleLoginDTO struct {
	GoogleToken string `json:"google_token" binding:"required"`
}

type adminLoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type validateDTO struct {
	Token string `json:"token" binding:"required"`
}

type createAdminDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
