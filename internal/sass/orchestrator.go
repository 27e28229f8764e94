package sass

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	derrors "github.com/mthadley/magnet-plugin-sass/internal/foundation/errors"
	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
	"github.com/mthadley/magnet-plugin-sass/internal/metrics"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
	"github.com/mthadley/magnet-plugin-sass/internal/sass/compiler"
)

// BuildFailureNotice prefixes every build failure.
const BuildFailureNotice = "Something went wrong compiling your stylesheets"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Orchestrator compiles the configured sources and writes the results.
type Orchestrator struct {
	compiler compiler.Compiler
	fs       FileSystem
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewOrchestrator returns an Orchestrator compiling through c.
func NewOrchestrator(c compiler.Compiler, opts ...Option) *Orchestrator {
	o := buildOptions(opts)
	return &Orchestrator{
		compiler: c,
		fs:       o.fs,
		recorder: o.recorder,
		logger:   o.logger,
	}
}

// sourceError remembers which source a failure came from.
type sourceError struct {
	source string
	err    error
}

func (e *sourceError) Error() string { return e.err.Error() }

func (e *sourceError) Unwrap() error { return e.err }

// Build compiles every source in host's sass configuration concurrently and
// writes each result to the output directory. With no sources it returns nil
// without touching the filesystem. Any failure is reported as a single build
// error carrying the first failure's message; files already written stay.
func (o *Orchestrator) Build(ctx context.Context, host plugin.Host) error {
	cfg := host.Config().Magnet.PluginsConfig.Sass
	sources := Sources(cfg)
	o.recorder.SetBuildSources(len(sources))

	if len(sources) == 0 {
		o.logger.Debug("No stylesheet sources configured")
		o.recorder.IncBuildOutcome(metrics.BuildOutcomeSkipped)
		return nil
	}

	root := host.Directory()
	outDir := OutputDir(root)
	opts := compilerOptions(cfg, root)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			return o.buildOne(gctx, src, resolve(root, src), outDir, opts)
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	o.recorder.ObserveBuildDuration(elapsed)

	if err != nil {
		o.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return buildError(err)
	}

	o.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	o.logger.Info("Stylesheets compiled",
		logfields.Count(len(sources)),
		logfields.Output(outDir),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return nil
}

// buildOne compiles a single source, then ensures outDir exists, then writes the CSS.
func (o *Orchestrator) buildOne(ctx context.Context, src, path, outDir string, opts compiler.Options) error {
	start := time.Now()
	res, err := o.compiler.Compile(ctx, path, opts)
	o.recorder.ObserveCompileDuration(src, time.Since(start), resultLabel(err))
	if err != nil {
		o.logger.Debug("Stylesheet compilation failed", logfields.Source(src), logfields.Error(err))
		return &sourceError{source: src, err: err}
	}

	if err := o.fs.MkdirAll(outDir, dirPerm); err != nil {
		return &sourceError{source: src, err: err}
	}

	out := OutputFile(src, outDir)
	if err := o.fs.WriteFile(out, []byte(res.CSS), filePerm); err != nil {
		return &sourceError{source: src, err: err}
	}

	o.logger.Debug("Stylesheet written",
		logfields.Source(src),
		logfields.Output(out),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

func buildError(err error) error {
	b := derrors.NewError(derrors.CategoryBuild, BuildFailureNotice).Fatal()
	var se *sourceError
	if errors.As(err, &se) {
		return b.WithCause(se.err).WithContext("source", se.source).Build()
	}
	return b.WithCause(err).Build()
}

func compilerOptions(cfg config.SassConfig, root string) compiler.Options {
	opts := compiler.Options{OutputStyle: compiler.OutputStyle(cfg.OutputStyle)}
	if len(cfg.IncludePaths) > 0 {
		opts.IncludePaths = make([]string, len(cfg.IncludePaths))
		for i, p := range cfg.IncludePaths {
			opts.IncludePaths[i] = resolve(root, p)
		}
	}
	return opts
}

func resultLabel(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFailed
	}
}
