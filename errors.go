package morph

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrRootCollection indicates a slice, array, or map type was used as
	// the source or target of a single-object mapping. Collections must be
	// mapped through MapSlice or MapSeq.
	ErrRootCollection = errors.New("collection type at mapping root")

	// ErrNotStruct indicates the source or target of a mapping is not a
	// struct type.
	ErrNotStruct = errors.New("mapping requires struct types")
)

// ConfigError represents a misconfigured type pair.
// It wraps a sentinel error with the source and target type names.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrRootCollection, ErrNotStruct)
	Source string // Source type name
	Target string // Target type name
}

func (e *ConfigError) Error() string {
	if e.Source != "" || e.Target != "" {
		return fmt.Sprintf("%s (%s -> %s)", e.Err.Error(), e.Source, e.Target)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for an invalid type pair.
func newConfigError(sentinel error, pair TypePair) error {
	return &ConfigError{
		Err:    sentinel,
		Source: pair.Src.String(),
		Target: pair.Dst.String(),
	}
}
