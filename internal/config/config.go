// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	LogLevel string
	Port     int
	DevMode  bool
}

// Load reads configuration from the environment, loading a .env file first
// when one exists. Missing variables fall back to sensible defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments use plain env vars.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8090"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     port,
		DevMode:  getEnv("DEV_MODE", "false") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
