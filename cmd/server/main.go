package main

import (
	"log"
	"net/http"

	_ "bptrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bptrack/internal/auth"
	"bptrack/internal/cache"
	"bptrack/internal/config"
	"bptrack/internal/db"
	"bptrack/internal/handler"
	"bptrack/internal/mailer"
	"bptrack/internal/model"
	"bptrack/internal/repository"
	"bptrack/internal/router"
	"bptrack/internal/service"
)

// @title Blood Pressure Tracker API
// @version 1.0
// @description Personal blood pressure tracking API with JWT authentication and per-user data isolation.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Reading{},
		&model.PasswordResetToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	readingRepo := repository.NewReadingRepository(gormDB)
	resetTokenRepo := repository.NewResetTokenRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, resetTokenRepo, hasher, jwtService, mailer.LogMailer{})
	readingService := service.NewReadingService(readingRepo, cacheClient)
	exportService := service.NewExportService(userRepo, readingRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	readingHandler := handler.NewReadingHandler(readingService)
	exportHandler := handler.NewExportHandler(exportService)

	// Register routes
	router.Register(e, cfg, authHandler, readingHandler, exportHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
