package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bptrack/internal/auth"
	apperrors "bptrack/internal/errors"
	"bptrack/internal/mailer"
	"bptrack/internal/model"
	"bptrack/internal/repository"
)

const resetTokenTTL = time.Hour

// AuthService handles account lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, resetToken, newPassword string) error
}

type authService struct {
	users       repository.UserRepository
	resetTokens repository.ResetTokenRepository
	hasher      *auth.PasswordHasher
	jwtService  *auth.JWTService
	mail        mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	resetTokens repository.ResetTokenRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	mail mailer.Mailer,
) AuthService {
	return &authService{
		users:       users,
		resetTokens: resetTokens,
		hasher:      hasher,
		jwtService:  jwtService,
		mail:        mail,
	}
}

// Register creates a new user with a hashed password and issues a token.
// Duplicate emails surface from the store's unique constraint.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, *model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Login authenticates a user and issues a token. Unknown email and wrong
// password return the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Profile returns the user for an authenticated identity. The id can be
// stale: tokens outlive user deletion, so a valid token may name a user
// that no longer exists.
func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

// RequestPasswordReset issues a single-use reset token and hands it to the
// mailer. Unknown emails return success so the endpoint cannot be used to
// probe which addresses are registered.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	raw, err := auth.NewResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	if err := s.resetTokens.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.resetTokens.Create(ctx, &model.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: auth.HashResetToken(raw),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}); err != nil {
		return err
	}

	return s.mail.SendPasswordReset(ctx, user.Email, user.Name, raw)
}

// ResetPassword validates and consumes a reset token, then replaces the
// stored digest. Every failure mode maps to the same error.
func (s *authService) ResetPassword(ctx context.Context, email, resetToken, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return err
	}

	ok, err := s.resetTokens.Consume(ctx, user.ID, auth.HashResetToken(resetToken), time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	updated, err := s.users.UpdatePasswordHash(ctx, email, hash)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.ErrInvalidResetToken
	}
	return nil
}
