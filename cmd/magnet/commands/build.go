package commands

import (
	"context"
	"fmt"

	"github.com/mthadley/magnet-plugin-sass/internal/host"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dir string `short:"d" help:"Project directory (defaults to the configuration file's directory)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, logger, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	h, err := newHost(cfg, ResolveProjectDir(b.Dir, root.Config), host.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer closeHost(h, logger)

	if err := h.Build(context.Background()); err != nil {
		return err
	}
	fmt.Println("Build complete")
	return nil
}
