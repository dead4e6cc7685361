package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration can actually run the
// service, collecting every problem instead of stopping at the first.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.GeminiAPIKey == "" {
		errors = append(errors, "GEMINI_API_KEY is not set (set the variable or provide the gemini_api_key secret)")
	}
	if cfg.SessionSecret == "" {
		errors = append(errors, "SESSION_SECRET is not set (set the variable or provide the session_secret secret)")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "PORT must not be empty")
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("GEMINI_TEMPERATURE must be between 0 and 2, got %g", cfg.Temperature))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, "REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if cfg.Environment == Production && len(cfg.AllowedOrigins) == 0 {
		errors = append(errors, "ALLOWED_ORIGINS must be set in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
