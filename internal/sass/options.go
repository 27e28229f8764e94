package sass

import (
	"log/slog"

	"github.com/mthadley/magnet-plugin-sass/internal/metrics"
)

type options struct {
	fs       FileSystem
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures an Orchestrator, Registrar or Plugin.
type Option func(*options)

// WithFileSystem replaces the filesystem compiled CSS is written through.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		fs:       OSFileSystem{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = OSFileSystem{}
	}
	if o.recorder == nil {
		o.recorder = metrics.NoopRecorder{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With(slog.String("plugin", Name))
	return o
}
