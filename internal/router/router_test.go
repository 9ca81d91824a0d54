package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"bptrack/internal/auth"
	"bptrack/internal/config"
	"bptrack/internal/handler"
	"bptrack/internal/model"
	"bptrack/internal/service"
)

const testSecret = "router-test-secret"

// stubReadingService records the user id it was called with.
type stubReadingService struct {
	lastUserID uint
}

func (s *stubReadingService) Add(_ context.Context, userID uint, input service.ReadingInput) (*model.Reading, error) {
	s.lastUserID = userID
	return &model.Reading{ID: 1, UserID: userID, Systolic: input.Systolic, Diastolic: input.Diastolic}, nil
}

func (s *stubReadingService) List(_ context.Context, userID uint) ([]model.Reading, error) {
	s.lastUserID = userID
	return []model.Reading{}, nil
}

func (s *stubReadingService) Get(_ context.Context, userID, id uint) (*model.Reading, error) {
	s.lastUserID = userID
	return &model.Reading{ID: id, UserID: userID}, nil
}

func (s *stubReadingService) Update(_ context.Context, userID, id uint, input service.ReadingInput) (*model.Reading, error) {
	s.lastUserID = userID
	return &model.Reading{ID: id, UserID: userID, Systolic: input.Systolic, Diastolic: input.Diastolic}, nil
}

func (s *stubReadingService) Delete(_ context.Context, userID, _ uint) error {
	s.lastUserID = userID
	return nil
}

func (s *stubReadingService) Statistics(_ context.Context, userID uint) (*service.Statistics, error) {
	s.lastUserID = userID
	return &service.Statistics{}, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(_ context.Context, name, email, _ string) (string, *model.User, error) {
	return "token", &model.User{ID: 1, Name: name, Email: email}, nil
}

func (stubAuthService) Login(_ context.Context, email, _ string) (string, *model.User, error) {
	return "token", &model.User{ID: 1, Email: email}, nil
}

func (stubAuthService) Profile(_ context.Context, userID uint) (*model.User, error) {
	return &model.User{ID: userID, Email: "ann@x.com"}, nil
}

func (stubAuthService) RequestPasswordReset(context.Context, string) error { return nil }

func (stubAuthService) ResetPassword(context.Context, string, string, string) error { return nil }

type stubExportService struct{}

func (stubExportService) CSV(context.Context, uint) ([]byte, error)     { return []byte("csv"), nil }
func (stubExportService) JSON(context.Context, uint) ([]byte, error)    { return []byte("[]"), nil }
func (stubExportService) Summary(context.Context, uint) ([]byte, error) { return []byte("sum"), nil }

func newTestServer(t *testing.T) (*echo.Echo, *stubReadingService) {
	t.Helper()
	e := echo.New()
	cfg := &config.Config{JWTSecret: testSecret}
	readings := &stubReadingService{}
	Register(e, cfg,
		handler.NewAuthHandler(stubAuthService{}),
		handler.NewReadingHandler(readings),
		handler.NewExportHandler(stubExportService{}),
	)
	return e, readings
}

func doRequest(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutes_UniformRejection(t *testing.T) {
	e, _ := newTestServer(t)

	expired := signToken(t, &auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: 1}).
		SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "malformed token", token: "garbage"},
		{name: "wrong signature", token: wrongKey},
		{name: "expired token", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, "/api/readings", tt.token)
			// every failure mode yields the same 401
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("valid token without bearer scheme", func(t *testing.T) {
		valid := signToken(t, &auth.Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/api/readings", nil)
		req.Header.Set(echo.HeaderAuthorization, valid)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProtectedRoutes_IdentityPropagates(t *testing.T) {
	e, readings := newTestServer(t)

	token := signToken(t, &auth.Claims{
		UserID: 42,
		Email:  "ann@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	})

	rec := doRequest(e, http.MethodGet, "/api/readings", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), readings.lastUserID)

	rec = doRequest(e, http.MethodGet, "/api/readings/statistics", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/readings/export/csv", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "blood-pressure-readings.csv")
}

func TestPublicRoutes_NoTokenRequired(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func signToken(t *testing.T, claims *auth.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return raw
}
