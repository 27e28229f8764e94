// Package errors provides classified error primitives shared by the plugin,
// the host harness and the HTTP server.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, build, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLI and HTTP adapters for presenting errors
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryBuild, "stylesheet compilation failed").
//		WithContext("source", path).
//		Build()
package errors
