// Package commands implements the magnet subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	"github.com/mthadley/magnet-plugin-sass/internal/host"
	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
	"github.com/mthadley/magnet-plugin-sass/internal/sass"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"magnet.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Compile configured stylesheets into .magnet/sass"`
	Serve ServeCmd `cmd:"" help:"Build, then serve compiled stylesheets under /css"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// NewLogger builds the handler selected by the logging section. verbose forces debug.
func NewLogger(w io.Writer, cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := slogLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func slogLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveProjectDir returns dir when set, otherwise the configuration file's directory.
func ResolveProjectDir(dir, configPath string) string {
	if dir != "" {
		return dir
	}
	return filepath.Dir(configPath)
}

// loadConfig loads root.Config and installs the configured logger as the default.
func loadConfig(g *Global, root *CLI) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, nil, err
	}
	logger := NewLogger(os.Stderr, cfg.Logging, root.Verbose)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, logger, nil
}

// newHost creates a host with the sass plugin registered.
func newHost(cfg *config.Config, dir string, hopts host.Options, opts ...sass.Option) (*host.Host, error) {
	h, err := host.New(cfg, dir, hopts)
	if err != nil {
		return nil, err
	}
	p, err := sass.FromConfig(cfg, hopts.Logger, opts...)
	if err != nil {
		return nil, err
	}
	if err := h.Register(p); err != nil {
		return nil, err
	}
	return h, nil
}

func closeHost(h *host.Host, logger *slog.Logger) {
	if err := h.Close(); err != nil {
		logger.Warn("Plugin cleanup failed", logfields.Error(err))
	}
}
