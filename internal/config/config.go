// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all configuration values for the Dinos server and seed command.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string.
	// Required unless StoreDriver is "memory".
	DatabaseURL string

	// StoreDriver selects the dino store: "postgres" (default) or "memory".
	StoreDriver string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending migrations before serving. Defaults to true.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// A .env file (or the file named by ENV_FILE) is read first when present;
// variables already set in the environment win over the file.
// Returns one error listing every missing or invalid variable.
func Load() (Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StorePostgres)),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing, invalid []string

	switch cfg.StoreDriver {
	case StorePostgres, StoreMemory:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" && cfg.StoreDriver != StoreMemory {
		missing = append(missing, "DATABASE_URL")
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		invalid = append(invalid, "MIGRATE_ON_START")
	}
	cfg.MigrateOnStart = migrate

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// loadEnvFile reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
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
