package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bptrack/internal/model"
)

// ResetTokenRepository persists single-use password reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	// Consume deletes the live token matching tokenHash for the user and
	// reports whether one existed. Deleting in the same statement as the
	// match makes the token single-use even under concurrent attempts.
	Consume(ctx context.Context, userID uint, tokenHash string, now time.Time) (bool, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type resetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository creates a new reset token repository.
func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *resetTokenRepository) Consume(ctx context.Context, userID uint, tokenHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ? AND expires_at > ?", userID, tokenHash, now).
		Delete(&model.PasswordResetToken{})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByUser invalidates any outstanding tokens, called before issuing a
// new one so at most one reset token is live per user.
func (r *resetTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetToken{})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}
