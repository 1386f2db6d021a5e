// Package validation provides a fluent validator for configuration structs.
// It collects every violation rather than failing on the first one, so a
// misconfigured router reports all of its problems at once.
package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator accumulates validation errors for one named config struct.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Positive validates that an int field is positive (> 0).
func (cv *ConfigValidator) Positive(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must be positive", cv.name, field, value))
	}
	return cv
}

// MinInt validates that an int field is at least the minimum value.
func (cv *ConfigValidator) MinInt(field string, value, min int) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d is below minimum %d", cv.name, field, value, min))
	}
	return cv
}

// Probability validates that a float field lies in [0, 1].
func (cv *ConfigValidator) Probability(field string, value float64) *ConfigValidator {
	if value < 0 || value > 1 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g is outside [0, 1]", cv.name, field, value))
	}
	return cv
}

// HalfOpenUnit validates that a float field lies in (0, 1].
func (cv *ConfigValidator) HalfOpenUnit(field string, value float64) *ConfigValidator {
	if value <= 0 || value > 1 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g is outside (0, 1]", cv.name, field, value))
	}
	return cv
}

// MinFloat validates that a float field is at least the minimum value.
func (cv *ConfigValidator) MinFloat(field string, value, min float64) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g is below minimum %g", cv.name, field, value, min))
	}
	return cv
}

// Ordered validates that the lo field does not exceed the hi field.
func (cv *ConfigValidator) Ordered(loField string, lo float64, hiField string, hi float64) *ConfigValidator {
	if lo > hi {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s (%g) must not exceed %s.%s (%g)", cv.name, loField, lo, cv.name, hiField, hi))
	}
	return cv
}

// NotEmpty validates that a string slice has at least one entry.
func (cv *ConfigValidator) NotEmpty(field string, value []string) *ConfigValidator {
	if len(value) == 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required list is empty", cv.name, field))
	}
	return cv
}

// Custom applies a custom validation function.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

// HasErrors returns true if any validation errors occurred.
func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Errors returns all validation errors.
func (cv *ConfigValidator) Errors() []error {
	return cv.errors
}

// Validate returns a combined error if any validations failed.
func (cv *ConfigValidator) Validate() error {
	if len(cv.errors) == 0 {
		return nil
	}
	if len(cv.errors) == 1 {
		return cv.errors[0]
	}
	return fmt.Errorf("%s validation failed with %d errors: %v", cv.name, len(cv.errors), errors.Join(cv.errors...))
}

// Validatable is an interface for types that can validate themselves.
type Validatable interface {
	Validate() error
}

// ValidateConfig validates any type that implements Validatable.
func ValidateConfig(config Validatable) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}
	return config.Validate()
}
