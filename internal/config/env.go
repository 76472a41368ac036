package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from the environment.
type EnvConfig struct {
	DB           *string        `env:"SPIREAD_DB"`
	LogLevel     *string        `env:"SPIREAD_LOG_LEVEL"`
	Duration     *time.Duration `env:"SPIREAD_DURATION"`
	GraceDelay   *time.Duration `env:"SPIREAD_GRACE_DELAY"`
	TickInterval *time.Duration `env:"SPIREAD_TICK_INTERVAL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
