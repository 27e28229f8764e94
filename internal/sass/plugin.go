package sass

import (
	"context"
	"log/slog"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
	"github.com/mthadley/magnet-plugin-sass/internal/sass/compiler"
	"github.com/mthadley/magnet-plugin-sass/internal/version"
)

// Plugin wires one Orchestrator and one Registrar into the host plugin contract.
type Plugin struct {
	plugin.BasePlugin

	compiler     compiler.Compiler
	orchestrator *Orchestrator
	registrar    *Registrar
}

var _ plugin.PluginLifecycle = (*Plugin)(nil)

// New returns the plugin compiling through c.
func New(c compiler.Compiler, opts ...Option) *Plugin {
	return &Plugin{
		compiler:     c,
		orchestrator: NewOrchestrator(c, opts...),
		registrar:    NewRegistrar(opts...),
	}
}

// FromConfig builds the plugin with the compiler backend named in cfg.
func FromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Plugin, error) {
	sc := cfg.Magnet.PluginsConfig.Sass
	c, err := compiler.New(compiler.Backend(sc.Compiler), sc.Binary, logger)
	if err != nil {
		return nil, err
	}
	return New(c, append([]Option{WithLogger(logger)}, opts...)...), nil
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     version.Version,
		Type:        plugin.PluginTypeAsset,
		Description: "Compiles Sass sources to CSS and serves them under " + URLPrefix,
	}
}

// Build implements plugin.Plugin.
func (p *Plugin) Build(ctx context.Context, host plugin.Host) error {
	return p.orchestrator.Build(ctx, host)
}

// Start implements plugin.Plugin.
func (p *Plugin) Start(ctx context.Context, host plugin.Host) error {
	return p.registrar.Start(ctx, host)
}

// Test always returns false: the plugin acts only on configured sources and
// never claims modules by inspecting them.
func (p *Plugin) Test() bool {
	return false
}

// Cleanup stops the compiler backend if it holds a process.
func (p *Plugin) Cleanup() error {
	return compiler.Close(p.compiler)
}
