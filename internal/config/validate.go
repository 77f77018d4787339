// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks configuration correctness against the struct tags.
// It performs declarative validation only and MUST NOT mutate the
// configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
