package config

import (
	"fmt"
	"strings"

	recallErrors "github.com/cadre-oss/recall/internal/errors"
)

var (
	validDrivers = map[string]bool{
		"file":   true,
		"jsonl":  true,
		"sqlite": true,
	}
	validLevels = map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	validFormats = map[string]bool{
		"text": true,
		"json": true,
	}
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	var errors []string

	if !validDrivers[strings.ToLower(cfg.Memory.Driver)] {
		errors = append(errors, fmt.Sprintf("invalid memory driver: %s", cfg.Memory.Driver))
	}
	if strings.TrimSpace(cfg.Memory.Path) == "" {
		errors = append(errors, "memory path is required")
	}
	if cfg.Memory.MaxExchanges < 1 {
		errors = append(errors, fmt.Sprintf("max_exchanges must be at least 1, got %d", cfg.Memory.MaxExchanges))
	}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errors = append(errors, fmt.Sprintf("invalid logging level: %s", cfg.Logging.Level))
	}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errors = append(errors, fmt.Sprintf("invalid logging format: %s", cfg.Logging.Format))
	}

	if len(errors) > 0 {
		return recallErrors.New(recallErrors.CodeConfigInvalid,
			"config validation failed: "+strings.Join(errors, "; ")).
			WithSuggestion("Fix the listed fields in " + FileName)
	}
	return nil
}
