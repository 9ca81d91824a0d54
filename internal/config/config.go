package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	MySQLDSN       string
	DBMaxOpenConns int
	DBMaxIdleConns int
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	SwaggerHost    string
}

// Load builds Config from environment. Required values (signing secret,
// database DSN) have no defaults; a missing one is a startup error so the
// server fails fast before accepting requests.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 15)) * time.Minute,
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var JWT_SECRET")
	}
	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("missing required env var MYSQL_DSN")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
