// Package oaserrors provides structured error types for the oastypes module.
//
// Import path: github.com/erraggy/oastypes/oaserrors
//
// Callers can distinguish failure categories with [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures and structural issues in the document
//   - [ReferenceError]: $ref resolution failures, circular references, path traversal
//   - [ResolutionError]: a schema that cannot be turned into a type (malformed input)
//   - [UnsupportedError]: a recognized construct with no defined mapping
//   - [RegistryError]: a type registry consistency fault (programming error, raised by panic)
//   - [ValidationError]: preflight conformance findings
//   - [ResourceLimitError]: size and depth limits
//   - [ConfigError]: invalid options or inputs
//
// # Sentinel Errors
//
// Each error type has a sentinel for use with errors.Is():
//
//   - [ErrParse], [ErrReference], [ErrCircularReference], [ErrPathTraversal]
//   - [ErrResolution], [ErrUnsupported], [ErrRegistry]
//   - [ErrValidation], [ErrResourceLimit], [ErrConfig]
//
// # Locations
//
// ResolutionError and UnsupportedError carry the JSON pointer of the offending schema so
// that a failed run can name the exact place in the document:
//
//	res, err := analyzer.AnalyzeWithOptions(analyzer.WithDocument(doc))
//	var rerr *oaserrors.ResolutionError
//	if errors.As(err, &rerr) {
//		fmt.Println("bad schema at", rerr.Pointer)
//	}
package oaserrors
