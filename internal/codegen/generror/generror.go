// Package generror defines the error taxonomy of a generation run.
//
// A ConfigurationError aborts the run before anything is scanned. A
// ValidationError rejects a single route declaration; the generator still
// aborts the whole run so no container is written with methods missing.
package generror

import "fmt"

// ConfigurationError reports a missing or invalid build option.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Option, e.Reason)
}

// ValidationError reports an invalid route declaration or field.
type ValidationError struct {
	Route  string // class or path identifying the declaration
	Field  string // empty when the declaration itself is invalid
	Source string // file:line when known
	Reason string
}

func (e *ValidationError) Error() string {
	loc := e.Route
	if e.Field != "" {
		loc += "." + e.Field
	}
	if e.Source != "" {
		return fmt.Sprintf("validation: %s (%s): %s", loc, e.Source, e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", loc, e.Reason)
}

func ErrMissingOption(option string) *ConfigurationError {
	return &ConfigurationError{Option: option, Reason: "must be set and non-empty"}
}

func ErrInvalidOption(option, reason string) *ConfigurationError {
	return &ConfigurationError{Option: option, Reason: reason}
}

func ErrRoute(route, source, reason string) *ValidationError {
	return &ValidationError{Route: route, Source: source, Reason: reason}
}

func ErrField(route, field, source, reason string) *ValidationError {
	return &ValidationError{Route: route, Field: field, Source: source, Reason: reason}
}
