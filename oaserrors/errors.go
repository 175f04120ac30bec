package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a $ref could not be resolved.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain that never reaches a schema.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a file reference escaping its base directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrResolution indicates a schema that cannot be resolved to a type.
	ErrResolution = errors.New("resolution error")

	// ErrUnsupported indicates a construct without a defined mapping.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrRegistry indicates a type registry consistency fault.
	ErrRegistry = errors.New("registry fault")

	// ErrValidation indicates a preflight conformance failure.
	ErrValidation = errors.New("validation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// location formats " at <pointer> (line L, column C)" with the parts that are known.
func location(pointer string, line, column int) string {
	var msg string
	if pointer != "" {
		msg += " at " + pointer
	}
	if line > 0 {
		msg += fmt.Sprintf(" (line %d", line)
		if column > 0 {
			msg += fmt.Sprintf(", column %d", column)
		}
		msg += ")"
	}
	return msg
}

func withDetail(msg, message string, cause error) string {
	if message != "" {
		msg += ": " + message
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}

// ParseError represents a failure to decode an OpenAPI document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	return withDetail(msg, e.Message, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType is "local", "file", or "http"
	RefType string
	// IsCircular is true when the ref chain loops without reaching a definition
	IsCircular bool
	// IsPathTraversal is true when a file ref escapes the base directory
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	} else if e.IsPathTraversal {
		msg = "path traversal detected"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	return withDetail(msg, e.Message, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference or ErrPathTraversal
// when the matching flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// ResolutionError reports a schema that is structurally invalid for type resolution,
// such as a multipart body whose schema is not an object or an enum of objects.
type ResolutionError struct {
	// Pointer is the JSON pointer of the offending schema
	Pointer string
	// Line and Column locate the schema when source locations were tracked
	Line   int
	Column int
	// Message describes what is wrong with the schema
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ResolutionError) Error() string {
	return withDetail("resolution error"+location(e.Pointer, e.Line, e.Column), e.Message, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// UnsupportedError reports a recognized construct that has no mapping to the type model.
// On auxiliary paths callers degrade to an untyped value and record a warning instead of
// returning it.
type UnsupportedError struct {
	// Pointer is the JSON pointer of the construct
	Pointer string
	// Construct names the construct, e.g. "media type" or "enum value"
	Construct string
	// Value is the offending value, if any
	Value any
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *UnsupportedError) Error() string {
	msg := "unsupported construct"
	if e.Construct != "" {
		msg = "unsupported " + e.Construct
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" %q", fmt.Sprint(e.Value))
	}
	return withDetail(msg+location(e.Pointer, 0, 0), e.Message, nil)
}

// Is reports whether target matches this error type.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// RegistryError describes a violated registry discipline: a double reservation,
// a commit without reservation, or a double commit. It is raised with panic because it can
// only result from a bug in the resolver, never from input.
type RegistryError struct {
	// Op is the registry operation that failed ("reserve" or "commit")
	Op string
	// Identity is the schema identity involved
	Identity string
	// Identifier is the type identifier involved, if any
	Identifier string
	// Message describes the violation
	Message string
}

// Error returns a human-readable error message.
func (e *RegistryError) Error() string {
	msg := "registry fault"
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.Identity != "" {
		msg += " for " + e.Identity
	}
	if e.Identifier != "" {
		msg += " (" + e.Identifier + ")"
	}
	return withDetail(msg, e.Message, nil)
}

// Is reports whether target matches this error type.
func (e *RegistryError) Is(target error) bool {
	return target == ErrRegistry
}

// ValidationError represents a conformance finding reported by preflight validation.
type ValidationError struct {
	// Path is the location of the problem, when the validator reports one
	Path string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return withDetail(msg, e.Message, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies the limit: "ref_depth", "file_size", "cached_documents"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	return withDetail(msg, e.Message, nil)
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return withDetail(msg, e.Message, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
