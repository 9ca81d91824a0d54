package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "bptrack/internal/errors"
)

// Identity is the authenticated principal resolved from a verified token.
type Identity struct {
	UserID uint
	Email  string
}

// CurrentIdentity resolves the identity of the request from the token the
// JWT middleware verified and stored in context. All failure modes map to
// the single ErrUnauthorized; callers cannot tell a missing token from an
// invalid one.
func CurrentIdentity(c echo.Context) (Identity, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Identity{}, apperrors.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return Identity{}, apperrors.ErrUnauthorized
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
