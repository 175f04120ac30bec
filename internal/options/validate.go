// Package options provides shared utilities for functional option validation.
package options

import "github.com/erraggy/oastypes/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// names lists the option functions that select a source, for the error message.
func ValidateSingleInputSource(pkg, names string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	switch {
	case count == 0:
		return &oaserrors.ConfigError{Option: "input", Message: pkg + ": must specify an input source (use " + names + ")"}
	case count > 1:
		return &oaserrors.ConfigError{Option: "input", Message: pkg + ": must specify exactly one input source"}
	}
	return nil
}

// NonNegative returns a ConfigError when v is negative.
func NonNegative[T int | int64](option string, v T) error {
	if v < 0 {
		return &oaserrors.ConfigError{Option: option, Value: v, Message: "must be non-negative"}
	}
	return nil
}
