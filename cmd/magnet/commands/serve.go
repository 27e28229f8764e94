package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mthadley/magnet-plugin-sass/internal/host"
	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
	"github.com/mthadley/magnet-plugin-sass/internal/metrics"
	"github.com/mthadley/magnet-plugin-sass/internal/sass"
	"github.com/mthadley/magnet-plugin-sass/internal/server"
	"github.com/mthadley/magnet-plugin-sass/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Dir   string `short:"d" help:"Project directory (defaults to the configuration file's directory)" type:"path"`
	Port  int    `short:"p" help:"Override server.port"`
	Watch bool   `short:"w" help:"Rebuild when stylesheet sources change"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, logger, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := metrics.NewRegistry()
	srv := server.New(cfg.Server, server.Options{Logger: logger, MetricsHandler: metrics.HTTPHandler(reg)})

	// With --watch a failed first build is logged and fixed by the next edit.
	h, err := newHost(cfg, ResolveProjectDir(s.Dir, root.Config),
		host.Options{Logger: logger, Server: srv, KeepServingOnBuildError: s.Watch},
		sass.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	if err != nil {
		return err
	}
	defer closeHost(h, logger)

	if s.Watch {
		dirs := h.WatchDirs()
		if len(dirs) == 0 {
			logger.Warn("Nothing to watch: no existing source directories")
		} else {
			w, err := watch.New(dirs, h.Build, watch.WithLogger(logger))
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				_ = w.Stop()
				return err
			}
			defer func() {
				if err := w.Stop(); err != nil {
					logger.Warn("Failed to stop watcher", logfields.Error(err))
				}
			}()
		}
	}

	return h.Serve(ctx)
}
