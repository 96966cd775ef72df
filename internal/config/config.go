package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"guardrails/internal/database"
)

// Config holds application configuration
type Config struct {
	// Server
	Port            string
	Env             string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Database
	Database       database.Config
	MigrationsPath string
	AutoMigrate    bool

	// Agent engine
	AgentEngineURL string
	AgentTimeout   time.Duration

	// Tracing; an empty endpoint disables export.
	OTLPEndpoint string
}

// Load loads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("ENV", "development"),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5434"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "guardrails_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),

		AgentEngineURL: strings.TrimRight(getEnv("AGENT_ENGINE_URL", "http://localhost:5000"), "/"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.AgentTimeout, err = parseDuration("AGENT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = parseBool("AUTO_MIGRATE", true); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func parseBool(key string, defaultValue bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return b, nil
}
