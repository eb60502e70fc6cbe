// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// WeatherTTL is how long a trip's cached weather snapshot stays fresh
	// before a refresh fetches again. Defaults to 1h.
	WeatherTTL time.Duration

	// RateLimitRPS is the per-client request rate. Defaults to 10.
	RateLimitRPS float64

	// RateLimitBurst is the per-client burst allowance. Defaults to 30.
	RateLimitBurst int

	// PremiumUnlocked activates the premium entitlement, removing the free
	// tier caps. Defaults to false.
	PremiumUnlocked bool

	// FreeMaxTrips caps how many trips the free tier may hold.
	// Zero disables the cap. Defaults to 0.
	FreeMaxTrips int64

	// FreeMaxUsers caps how many users the free tier may hold.
	// Zero disables the cap. Defaults to 0.
	FreeMaxUsers int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first malformed optional one.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var err error
	if cfg.WeatherTTL, err = time.ParseDuration(getEnv("WEATHER_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_TTL: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30")); err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	if cfg.PremiumUnlocked, err = strconv.ParseBool(getEnv("PREMIUM_UNLOCKED", "false")); err != nil {
		return Config{}, fmt.Errorf("invalid PREMIUM_UNLOCKED: %w", err)
	}
	if cfg.FreeMaxTrips, err = strconv.ParseInt(getEnv("FREE_MAX_TRIPS", "0"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid FREE_MAX_TRIPS: %w", err)
	}
	if cfg.FreeMaxUsers, err = strconv.ParseInt(getEnv("FREE_MAX_USERS", "0"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid FREE_MAX_USERS: %w", err)
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
