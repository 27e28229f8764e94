package compiler

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/godartsass/v2"
)

const defaultEmbeddedTimeout = 30 * time.Second

// Embedded compiles through a long-lived Dart Sass process using the
// embedded protocol. The process is started on first use and is shared by
// concurrent Compile calls.
type Embedded struct {
	binary string
	logger *slog.Logger

	mu         sync.Mutex
	transpiler transpiler
	startFn    func(godartsass.Options) (transpiler, error)
}

// transpiler is the part of *godartsass.Transpiler Embedded uses.
type transpiler interface {
	Execute(args godartsass.Args) (godartsass.Result, error)
	Close() error
}

// NewEmbedded returns an embedded compiler. binary may be empty.
func NewEmbedded(binary string, logger *slog.Logger) *Embedded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Embedded{binary: binary, logger: logger, startFn: startDartSass}
}

func startDartSass(opts godartsass.Options) (transpiler, error) {
	t, err := godartsass.Start(opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (e *Embedded) start() (transpiler, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.transpiler != nil {
		return e.transpiler, nil
	}

	t, err := e.startFn(godartsass.Options{
		DartSassEmbeddedFilename: e.binary,
		Timeout:                  defaultEmbeddedTimeout,
		LogEventHandler: func(ev godartsass.LogEvent) {
			e.logger.Warn("Sass", slog.Int("type", int(ev.Type)), slog.String("message", ev.Message))
		},
	})
	if err != nil {
		return nil, err
	}
	e.transpiler = t
	return t, nil
}

// Compile reads source and compiles it. The source's own directory is
// searched before opts.IncludePaths.
func (e *Embedded) Compile(ctx context.Context, source string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	t, err := e.start()
	if err != nil {
		return Result{}, err
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return Result{}, err
	}

	res, err := t.Execute(godartsass.Args{
		Source:       string(data),
		URL:          (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
		IncludePaths: append([]string{filepath.Dir(abs)}, opts.IncludePaths...),
		OutputStyle:  embeddedStyle(opts.OutputStyle),
		SourceSyntax: embeddedSyntax(source),
	})
	if err != nil {
		if errors.Is(err, godartsass.ErrShutdown) {
			e.discard(t)
		}
		return Result{}, &Error{Source: source, Err: err}
	}
	return Result{CSS: res.CSS}, nil
}

// discard forgets t if it is still the current transpiler, so the next
// Compile starts a fresh Dart Sass process.
func (e *Embedded) discard(t transpiler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.transpiler != t {
		return
	}
	e.logger.Warn("Dart Sass process shut down; restarting on next compile")
	_ = t.Close()
	e.transpiler = nil
}

// Close stops the Dart Sass process if it was started.
func (e *Embedded) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.transpiler == nil {
		return nil
	}
	err := e.transpiler.Close()
	e.transpiler = nil
	return err
}

func embeddedStyle(s OutputStyle) godartsass.OutputStyle {
	if styleOrDefault(s) == OutputStyleCompressed {
		return godartsass.OutputStyleCompressed
	}
	return godartsass.OutputStyleExpanded
}

func embeddedSyntax(source string) godartsass.SourceSyntax {
	switch syntaxOf(source) {
	case "sass":
		return godartsass.SourceSyntaxSASS
	case "css":
		return godartsass.SourceSyntaxCSS
	default:
		return godartsass.SourceSyntaxSCSS
	}
}
