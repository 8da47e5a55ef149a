package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string `validate:"required"` // .hcl file or directory

	LogFormat    string `validate:"oneof=text json"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	ReportFormat string `validate:"oneof=yaml json"`
	// FailFast stops checking at the first invalid resource.
	FailFast bool
}

// NewConfig applies defaults to cfg and validates it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "yaml"
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
