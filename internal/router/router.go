package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bptrack/internal/auth"
	"bptrack/internal/config"
	"bptrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	readingHandler *handler.ReadingHandler,
	exportHandler *handler.ExportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/request-password-reset", authHandler.RequestPasswordReset)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Secured routes (require a valid bearer token). The middleware rejects
	// missing, malformed, and expired tokens with the same 401.
	// Default token lookup strips the "Bearer " scheme from the
	// Authorization header before parsing.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/profile", authHandler.Profile)

	secured.POST("/readings", readingHandler.Create)
	secured.GET("/readings", readingHandler.List)
	secured.GET("/readings/statistics", readingHandler.Statistics)
	secured.GET("/readings/:id", readingHandler.Get)
	secured.PUT("/readings/:id", readingHandler.Update)
	secured.DELETE("/readings/:id", readingHandler.Delete)

	secured.GET("/readings/export/csv", exportHandler.CSV)
	secured.GET("/readings/export/json", exportHandler.JSON)
	secured.GET("/readings/export/summary", exportHandler.Summary)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
