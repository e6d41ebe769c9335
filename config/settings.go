package config

import (
	"fmt"

	"github.com/kbukum/capkit/logger"
)

// Validation policy values.
const (
	// ValidationLazy defers provider constraint checks to the first
	// resolved use of each capability.
	ValidationLazy = "lazy"
	// ValidationEager checks provider constraints while the delegation
	// table is assembled.
	ValidationEager = "eager"
)

// Settings contains the framework configuration.
type Settings struct {
	// Validation selects when impl-side provider constraints are checked:
	// "lazy" (default) or "eager".
	Validation string        `yaml:"validation" mapstructure:"validation"`
	Logging    logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	if s.Validation == "" {
		s.Validation = ValidationLazy
	}
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if s.Validation != ValidationLazy && s.Validation != ValidationEager {
		return fmt.Errorf("validation must be one of [lazy, eager] (got: %s)", s.Validation)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
