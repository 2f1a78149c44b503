package mochi

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("mochi: invalid configuration")

// ConfigError reports a curve, scroll region, card document or script that
// violates its invariants. It is detected at construction and is not
// recoverable by retrying.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "mochi: invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("mochi: invalid configuration: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
