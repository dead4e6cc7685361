package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Default values applied when the environment leaves a knob unset.
const (
	defaultServerPort     = "8080"
	defaultTemperature    = 0.7
	defaultRequestTimeout = 30 * time.Second
	devSessionSecret      = "dev-session-secret"
)

// defaultDevOrigins are the frontend dev servers allowed in non-production.
var defaultDevOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	AllowedOrigins []string

	// Gemini configuration
	GeminiAPIKey    string
	GeminiModel     string
	Temperature     float64
	RequestTimeout  time.Duration
	StrictNutrition bool

	// Session configuration
	SessionSecret string
}

// LoadConfig creates a new Config instance with values from environment
// variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environments using ONLY environment
// variables
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = envDefault("PORT", defaultServerPort)
	cfg.AllowedOrigins = splitOrigins(os.Getenv("ALLOWED_ORIGINS"), defaultDevOrigins)
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	cfg.SessionSecret = envDefault("SESSION_SECRET", devSessionSecret)
	return loadTuning(cfg)
}

// loadDevConfig loads configuration for development and test environments,
// falling back to safe local defaults
func loadDevConfig(cfg *Config) error {
	cfg.ServerPort = envDefault("PORT", defaultServerPort)
	cfg.AllowedOrigins = splitOrigins(os.Getenv("ALLOWED_ORIGINS"), defaultDevOrigins)
	cfg.GeminiAPIKey = envOrSecret("GEMINI_API_KEY", "gemini_api_key")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	cfg.SessionSecret = envDefault("SESSION_SECRET", devSessionSecret)
	return loadTuning(cfg)
}

// loadProdConfig loads configuration for production, where secrets come from
// Docker secrets and everything else from environment variables
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = envDefault("PORT", defaultServerPort)
	cfg.AllowedOrigins = splitOrigins(os.Getenv("ALLOWED_ORIGINS"), nil)
	cfg.GeminiAPIKey = envOrSecret("GEMINI_API_KEY", "gemini_api_key")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	cfg.SessionSecret = envOrSecret("SESSION_SECRET", "session_secret")
	return loadTuning(cfg)
}

// loadTuning parses the numeric and boolean knobs shared by all environments.
func loadTuning(cfg *Config) error {
	cfg.Temperature = defaultTemperature
	if raw := os.Getenv("GEMINI_TEMPERATURE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid GEMINI_TEMPERATURE %q: %w", raw, err)
		}
		cfg.Temperature = v
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if raw := os.Getenv("REQUEST_TIMEOUT_SECONDS"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS %q: %w", raw, err)
		}
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}

	if raw := os.Getenv("STRICT_NUTRITION"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid STRICT_NUTRITION %q: %w", raw, err)
		}
		cfg.StrictNutrition = v
	}

	return nil
}

// envDefault reads an environment variable, falling back to def when unset.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envOrSecret prefers the environment variable and falls back to the Docker
// secret of the same meaning.
func envOrSecret(envVar, secretName string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return readSecret(secretName)
}

// splitOrigins parses a comma-separated origin list, falling back to def.
func splitOrigins(raw string, def []string) []string {
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
