// Package testutil contains fixtures shared by package tests: a configuration
// builder, a recording host and file assertions.
package testutil

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)
