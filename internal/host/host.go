// Package host runs plugin lifecycles against a project directory and an HTTP server.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
	"github.com/mthadley/magnet-plugin-sass/internal/server"
)

// ShutdownTimeout bounds graceful HTTP shutdown in Serve.
const ShutdownTimeout = 10 * time.Second

// Options configures a Host.
type Options struct {
	Logger *slog.Logger

	// Server is created from cfg.Server when nil.
	Server *server.Server

	// KeepServingOnBuildError makes Serve log a failed initial build and
	// serve anyway, so a later rebuild can recover.
	KeepServingOnBuildError bool
}

// Host implements plugin.Host and drives registered plugins.
type Host struct {
	cfg      *config.Config
	dir      string
	server   *server.Server
	registry *plugin.Registry
	logger   *slog.Logger

	keepServing bool
	buildMu     sync.Mutex
}

var _ plugin.Host = (*Host)(nil)

// New returns a host rooted at dir.
func New(cfg *config.Config, dir string, opts Options) (*Host, error) {
	if cfg == nil {
		return nil, errors.New("host requires a configuration")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := opts.Server
	if srv == nil {
		srv = server.New(cfg.Server, server.Options{Logger: logger})
	}

	return &Host{
		cfg:      cfg,
		dir:      abs,
		server:   srv,
		registry:    plugin.NewRegistry(),
		logger:      logger,
		keepServing: opts.KeepServingOnBuildError,
	}, nil
}

func (h *Host) Config() *config.Config { return h.cfg }

func (h *Host) Directory() string { return h.dir }

func (h *Host) Server() plugin.Server { return h.server }

// HTTPServer returns the concrete server.
func (h *Host) HTTPServer() *server.Server { return h.server }

// Register adds p to the host's registry.
func (h *Host) Register(p plugin.Plugin) error {
	return h.registry.Register(p)
}

// Plugins returns registered plugins in registration order.
func (h *Host) Plugins() []plugin.Plugin {
	return h.registry.List()
}

// Build runs every plugin's Build in registration order, stopping at the first failure.
// Concurrent calls run one at a time.
func (h *Host) Build(ctx context.Context) error {
	h.buildMu.Lock()
	defer h.buildMu.Unlock()

	buildID := uuid.NewString()
	logger := h.logger.With(logfields.BuildID(buildID))
	start := time.Now()

	for _, p := range h.registry.List() {
		name := p.Metadata().Name
		logger.Debug("Running plugin build", logfields.Plugin(name))
		if err := p.Build(ctx, h); err != nil {
			logger.Error("Plugin build failed", logfields.Plugin(name), logfields.Error(err))
			return plugin.NewPluginError(name, plugin.PhaseBuild, err)
		}
	}

	logger.Info("Build complete",
		logfields.Count(h.registry.Count()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

// Start runs every plugin's Start so they can mount routes.
func (h *Host) Start(ctx context.Context) error {
	for _, p := range h.registry.List() {
		name := p.Metadata().Name
		if err := p.Start(ctx, h); err != nil {
			return plugin.NewPluginError(name, plugin.PhaseStart, err)
		}
		h.logger.Debug("Plugin started", logfields.Plugin(name))
	}
	return nil
}

// Serve builds, starts plugins, and serves HTTP until ctx is done.
func (h *Host) Serve(ctx context.Context) error {
	if err := h.Build(ctx); err != nil {
		if !h.keepServing {
			return err
		}
		h.logger.Warn("Initial build failed; serving anyway", logfields.Error(err))
	}
	if err := h.Start(ctx); err != nil {
		return err
	}
	if err := h.server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return h.server.Stop(shutdownCtx)
}

// Close runs plugin cleanup in reverse registration order.
func (h *Host) Close() error {
	return h.registry.Cleanup()
}

// WatchDirs returns the existing directories holding configured sources and include paths.
func (h *Host) WatchDirs() []string {
	sc := h.cfg.Magnet.PluginsConfig.Sass
	var dirs []string
	add := func(p string) {
		if !filepath.IsAbs(p) {
			p = filepath.Join(h.dir, p)
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	for _, src := range sc.Src {
		add(filepath.Dir(src))
	}
	for _, inc := range sc.IncludePaths {
		add(inc)
	}
	return dirs
}
