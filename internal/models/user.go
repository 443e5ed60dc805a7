package models

import "time"

// UserModel is a gallery visitor signed in via Google.
// Exactly one row exists per Google subject id; every login refreshes the
// profile fields and rotates the opaque login token.
type UserModel struct {
	Base
	GoogleID       string    `json:"google_id"        gorm:"uniqueIndex;not null"`
	Email          string    `json:"email"            gorm:"index"`
	Name           string    `json:"name"`
	AvatarURL      string    `json:"avatar_url"`
	LoginToken     string    `json:"-"                gorm:"uniqueIndex"`
	TokenExpiresAt time.Time `json:"token_expires_at" gorm:"index"`
}

func (UserModel) TableName() string { return "users" }
