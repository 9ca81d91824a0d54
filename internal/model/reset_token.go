package model

import "time"

// PasswordResetToken is a single-use credential for completing a password
// reset. Only a SHA-256 hash of the raw token is stored; the raw value is
// handed to the mail delivery path and never persisted.
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
