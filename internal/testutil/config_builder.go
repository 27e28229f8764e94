package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
)

// ConfigBuilder provides a fluent interface for creating test configurations.
type ConfigBuilder struct {
	config *config.Config
	t      *testing.T
}

// NewConfigBuilder creates a configuration with the loader's defaults applied.
func NewConfigBuilder(t *testing.T) *ConfigBuilder {
	return &ConfigBuilder{
		config: &config.Config{
			Magnet: config.MagnetConfig{PluginsConfig: config.PluginsConfig{Sass: config.SassConfig{
				OutputStyle: config.OutputStyleExpanded,
				Compiler:    config.CompilerEmbedded,
			}}},
			Server:  config.ServerConfig{Port: config.DefaultPort},
			Logging: config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText},
		},
		t: t,
	}
}

// WithSources sets magnet.pluginsConfig.sass.src.
func (cb *ConfigBuilder) WithSources(src ...string) *ConfigBuilder {
	cb.config.Magnet.PluginsConfig.Sass.Src = config.StringList(src)
	return cb
}

// WithIncludePaths sets magnet.pluginsConfig.sass.includePaths.
func (cb *ConfigBuilder) WithIncludePaths(paths ...string) *ConfigBuilder {
	cb.config.Magnet.PluginsConfig.Sass.IncludePaths = paths
	return cb
}

// WithOutputStyle sets magnet.pluginsConfig.sass.outputStyle.
func (cb *ConfigBuilder) WithOutputStyle(style config.OutputStyle) *ConfigBuilder {
	cb.config.Magnet.PluginsConfig.Sass.OutputStyle = style
	return cb
}

// WithCompiler selects the compiler backend and its binary.
func (cb *ConfigBuilder) WithCompiler(kind config.CompilerKind, binary string) *ConfigBuilder {
	cb.config.Magnet.PluginsConfig.Sass.Compiler = kind
	cb.config.Magnet.PluginsConfig.Sass.Binary = binary
	return cb
}

// WithPort sets server.port.
func (cb *ConfigBuilder) WithPort(port int) *ConfigBuilder {
	cb.config.Server.Port = port
	return cb
}

// Build returns the built configuration.
func (cb *ConfigBuilder) Build() *config.Config {
	return cb.config
}

// BuildAndSave builds the configuration and writes it as YAML to filePath.
func (cb *ConfigBuilder) BuildAndSave(filePath string) *config.Config {
	cb.t.Helper()
	data, err := yaml.Marshal(cb.config)
	if err != nil {
		cb.t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), testDirPermissions); err != nil {
		cb.t.Fatalf("Failed to create %s: %v", filepath.Dir(filePath), err)
	}
	if err := os.WriteFile(filePath, data, testFilePermissions); err != nil {
		cb.t.Fatalf("Failed to save config to %s: %v", filePath, err)
	}
	return cb.config
}
