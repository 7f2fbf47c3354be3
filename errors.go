package indexpager

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two fatal failure classes. Both indicate caller
// mistakes and are never retried or corrected silently; storage errors
// propagate from the Streamer unwrapped.
var (
	// ErrConfiguration signals an unresolvable index or field list.
	ErrConfiguration = errors.New("configuration error")
	// ErrRange signals malformed bound arguments.
	ErrRange = errors.New("range error")
)

// ConfigurationError wraps ErrConfiguration with the table and index that
// could not be resolved.
type ConfigurationError struct {
	Table  string
	Index  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: index '%s' on table '%s': %s",
		ErrConfiguration.Error(), e.Index, e.Table, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// RangeError wraps ErrRange with the offending field, when one can be named.
type RangeError struct {
	Field  string
	Reason string
}

func (e *RangeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrRange.Error(), e.Reason)
	}

	return fmt.Sprintf("%s: field '%s': %s", ErrRange.Error(), e.Field, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}
