// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an
// error. A .env file in the working directory is honoured when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// API holds all runtime configuration for the API service.
type API struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	ScoutURL    string // base URL of the scout worker
}

// LoadAPI reads environment variables and returns a validated API config.
func LoadAPI() (*API, error) {
	_ = godotenv.Load() // .env is optional

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	scoutURL := os.Getenv("SCOUT_URL")
	if scoutURL == "" {
		scoutURL = "http://localhost:8000"
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	return &API{
		Port:        port,
		DatabaseURL: dbURL,
		RedisURL:    redisURL,
		JWTSecret:   secret,
		ScoutURL:    scoutURL,
	}, nil
}

// Worker holds all runtime configuration for the scout worker.
type Worker struct {
	Port               string
	DatabaseURL        string
	RedisURL           string
	ScoutIntervalHours int // how often the cron scout cycle fires
}

// LoadWorker reads environment variables and returns a validated Worker config.
func LoadWorker() (*Worker, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("SCOUT_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCOUT_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	port := os.Getenv("SCOUT_PORT")
	if port == "" {
		port = "8000"
	}

	return &Worker{
		Port:               port,
		DatabaseURL:        dbURL,
		RedisURL:           redisURL,
		ScoutIntervalHours: interval,
	}, nil
}
