package model

import "time"

// Reading represents a single blood pressure measurement owned by a user.
type Reading struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Systolic    int       `json:"systolic" gorm:"not null"`
	Diastolic   int       `json:"diastolic" gorm:"not null"`
	ReadingTime time.Time `json:"reading_time" gorm:"not null;index"`
	Note        *string   `json:"note,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
