package model

import "time"

// User represents a registered account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Readings    []Reading            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ResetTokens []PasswordResetToken `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
