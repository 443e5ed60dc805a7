package models

import "time"

// Admin account status values.
const (
	AdminStatusActive   = "active"
	AdminStatusDisabled = "disabled"
)

// AdminModel is the operator account that uploads and curates assets.
// Rows are created out-of-band (cmd/admintool) or via the guarded create
// endpoint; they are never deleted by this service.
type AdminModel struct {
	Base
	Username     string     `json:"username"      gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-"             gorm:"not null"`
	Status       string     `json:"status"        gorm:"default:active;not null"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (AdminModel) TableName() string { return "admins" }

// Disabled reports whether the account is blocked from signing in.
func (a *AdminModel) Disabled() bool { return a.Status == AdminStatusDisabled }
