package main

import (
	"context"
	"log"
	"time"

	"bptrack/internal/auth"
	"bptrack/internal/config"
	"bptrack/internal/db"
	apperrors "bptrack/internal/errors"
	"bptrack/internal/model"
	"bptrack/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "secret123"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Reading{}, &model.PasswordResetToken{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	readings := repository.NewReadingRepository(gormDB)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &model.User{Name: "Demo User", Email: demoEmail, PasswordHash: hash}
	if err := users.Create(ctx, user); err != nil {
		if err == apperrors.ErrDuplicateEmail {
			log.Printf("Demo user %s already exists, skipping", demoEmail)
			return
		}
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s (password %q)", demoEmail, demoPassword)

	note := "after morning walk"
	samples := []model.Reading{
		{UserID: user.ID, Systolic: 118, Diastolic: 76, ReadingTime: daysAgo(6)},
		{UserID: user.ID, Systolic: 124, Diastolic: 82, ReadingTime: daysAgo(5)},
		{UserID: user.ID, Systolic: 131, Diastolic: 85, ReadingTime: daysAgo(4)},
		{UserID: user.ID, Systolic: 122, Diastolic: 79, ReadingTime: daysAgo(2), Note: &note},
		{UserID: user.ID, Systolic: 119, Diastolic: 77, ReadingTime: daysAgo(1)},
	}

	created := 0
	for i := range samples {
		if err := readings.Create(ctx, &samples[i]); err != nil {
			log.Printf("Failed to create sample reading: %v", err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d sample readings for %s", created, demoEmail)
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}
