package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStrategy is returned for an unrecognized strategy identifier.
	ErrInvalidStrategy = errors.New("invalid strategy")
	// ErrInvalidConfig is wrapped by every *ConfigurationError.
	ErrInvalidConfig = errors.New("invalid battery configuration")
	// ErrInvalidSeries is returned for malformed load/pv/price series.
	ErrInvalidSeries = errors.New("invalid series")
)

// ConfigurationError names the battery parameter that failed validation.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfig }

func configErr(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}
