package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Auth
	JWTSecret string
	JWTTTL    time.Duration
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTTTL:      getDuration("JWT_TTL_HOURS", 72) * time.Hour,
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultHours int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if h, err := strconv.Atoi(value); err == nil && h > 0 {
			return time.Duration(h)
		}
	}
	return time.Duration(defaultHours)
}
