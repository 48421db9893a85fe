package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("config is not a valid yaml document: %v", e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error { return e.Wrapped }

// SchemaViolationError reports config content that does not match the config schema.
type SchemaViolationError struct {
	Wrapped error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("config does not match the config schema: %v", e.Wrapped)
}

func (e *SchemaViolationError) Unwrap() error { return e.Wrapped }
