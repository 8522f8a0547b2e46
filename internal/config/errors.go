// Package config provides the parsed configuration records consumed by the
// template engine: per-template metadata (hayaku.yaml) and per-user global
// settings (settings.yaml). It loads YAML files, applies defaults for
// missing files, and validates the declared variable schema.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the template configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid template configuration")

	// ErrInvalidVariableKind indicates an unknown variable type value.
	ErrInvalidVariableKind = errors.New("config: invalid variable type, must be one of: string, bool, choices")

	// ErrInvalidYAML indicates invalid YAML syntax in a configuration file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrNotADirectory indicates a template path is not a directory.
	ErrNotADirectory = errors.New("config: template path is not a directory")
)

// ValidationError represents a single schema validation error with variable context.
type ValidationError struct {
	Variable string
	Message  string
	Wrapped  error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: variable %q: %s", e.Variable, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	if e.Wrapped != nil {
		return e.Wrapped
	}
	return ErrInvalidConfig
}
