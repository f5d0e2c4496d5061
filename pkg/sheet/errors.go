package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned by New when the config cannot
	// produce a usable panel.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrIndexOutOfRange is returned when a snap index does not address a
	// configured snap point.
	ErrIndexOutOfRange = errors.New("snap index out of range")

	// ErrInvalidSnapSpec is returned when a spec is not a finite number or
	// a percentage spec has a non-numeric leading portion.
	ErrInvalidSnapSpec = errors.New("invalid snap spec")
)

// InvalidSnapSpecError describes a snap spec that failed to parse.
type InvalidSnapSpecError struct {
	Spec string
	Err  error
}

func (e *InvalidSnapSpecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid snap spec %q: %v", e.Spec, e.Err)
	}
	return fmt.Sprintf("invalid snap spec %q", e.Spec)
}

func (e *InvalidSnapSpecError) Is(target error) bool {
	return target == ErrInvalidSnapSpec
}

func (e *InvalidSnapSpecError) Unwrap() error {
	return e.Err
}

// ConfigError represents a rejected configuration field
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IndexError represents a snap index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("snap index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
