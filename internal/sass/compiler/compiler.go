// Package compiler turns stylesheet sources into CSS text.
//
// The Compiler interface is the only thing the plugin depends on; Embedded
// drives Dart Sass over its embedded protocol and CLI runs the sass
// executable once per source.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// OutputStyle selects how compiled CSS is formatted.
type OutputStyle string

const (
	OutputStyleExpanded   OutputStyle = "expanded"
	OutputStyleCompressed OutputStyle = "compressed"
)

// Options are the compiler settings shared by every source in a build.
type Options struct {
	IncludePaths []string
	OutputStyle  OutputStyle
}

// Result is the compiled CSS for one source.
type Result struct {
	CSS string
}

// Compiler compiles a single stylesheet source file.
type Compiler interface {
	Compile(ctx context.Context, source string, opts Options) (Result, error)
}

// Func adapts a plain function to the Compiler interface.
type Func func(ctx context.Context, source string, opts Options) (Result, error)

// Compile calls f.
func (f Func) Compile(ctx context.Context, source string, opts Options) (Result, error) {
	return f(ctx, source, opts)
}

// Error reports that the compiler rejected a source.
// Error() yields the compiler's own message unchanged.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Backend names a Compiler implementation.
type Backend string

const (
	BackendEmbedded Backend = "embedded"
	BackendCLI      Backend = "cli"
)

// New returns the Compiler for backend. binary overrides the sass executable
// location; empty means look it up on PATH.
func New(backend Backend, binary string, logger *slog.Logger) (Compiler, error) {
	switch backend {
	case BackendEmbedded, "":
		return NewEmbedded(binary, logger), nil
	case BackendCLI:
		return NewCLI(binary), nil
	default:
		return nil, fmt.Errorf("unknown compiler backend %q", backend)
	}
}

// Close releases resources held by c if it has any.
func Close(c Compiler) error {
	if closer, ok := c.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func styleOrDefault(s OutputStyle) OutputStyle {
	if s == "" {
		return OutputStyleExpanded
	}
	return s
}

func syntaxOf(source string) string {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".sass":
		return "sass"
	case ".css":
		return "css"
	default:
		return "scss"
	}
}
