// Package severity provides the severity levels attached to issues found while resolving
// a document and generating code from it.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
package severity

import "fmt"

// Severity indicates how serious an issue is.
type Severity int

const (
	// SeverityInfo reports a processing choice, such as a union collapsed to an untyped value.
	SeverityInfo Severity = iota
	// SeverityWarning reports a lossy fallback on an auxiliary path. Strict mode turns
	// warnings into failures.
	SeverityWarning
	// SeverityError reports a problem that prevents output.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name in JSON and YAML dumps.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a level name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("severity: unknown level %q", string(b))
	}
	return nil
}
