package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// RequireCompletedForWinner rejects winner updates on matches that are
	// not completed. Off by default.
	RequireCompletedForWinner bool

	// ConflictSweepSchedule is a cron expression for the periodic conflict
	// broadcast. Empty disables the sweep.
	ConflictSweepSchedule string

	// R2 is optional; publishing schedules is disabled when it is absent.
	R2 *R2Config
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		DatabaseURL:               dbURL,
		JWTSecretKey:              jwtKey,
		ServerPort:                port,
		RequireCompletedForWinner: os.Getenv("REQUIRE_COMPLETED_FOR_WINNER") == "true",
		ConflictSweepSchedule:     os.Getenv("CONFLICT_SWEEP_SCHEDULE"),
	}

	if accountID := os.Getenv("R2_ACCOUNT_ID"); accountID != "" {
		r2 := &R2Config{
			AccountID:       accountID,
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		}
		if r2.AccessKeyID == "" || r2.SecretAccessKey == "" || r2.BucketName == "" || r2.PublicBaseURL == "" {
			return nil, fmt.Errorf("incomplete R2 configuration: R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL are all required")
		}
		cfg.R2 = r2
	}

	return cfg, nil
}
