package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "github.com/mthadley/magnet-plugin-sass/internal/foundation/errors"
)

// DefaultConfigFile is the configuration file name looked up by the CLI.
const DefaultConfigFile = "magnet.yaml"

// Config represents the host configuration file.
type Config struct {
	Magnet  MagnetConfig  `yaml:"magnet"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// MagnetConfig holds the framework section that plugins read from.
type MagnetConfig struct {
	PluginsConfig PluginsConfig `yaml:"pluginsConfig"`
}

// PluginsConfig holds per-plugin configuration blocks keyed by plugin name.
type PluginsConfig struct {
	Sass SassConfig `yaml:"sass"`
}

// SassConfig configures the stylesheet plugin.
// Only the named options below are forwarded to the compiler.
type SassConfig struct {
	Src          StringList   `yaml:"src,omitempty"`
	IncludePaths []string     `yaml:"includePaths,omitempty"`
	OutputStyle  OutputStyle  `yaml:"outputStyle,omitempty"`
	Compiler     CompilerKind `yaml:"compiler,omitempty"`
	Binary       string       `yaml:"binary,omitempty"`
}

// ServerConfig configures the host HTTP server.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// LoggingConfig configures the default slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load reads, expands, decodes and validates the configuration at configPath.
// .env files next to the configuration are loaded first so ${VAR} references resolve.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML configuration, rejecting unknown keys, then applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.NewError(derrors.CategoryValidation, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		Magnet: MagnetConfig{PluginsConfig: PluginsConfig{Sass: SassConfig{
			Src:          StringList{"styles/main.scss"},
			IncludePaths: []string{"styles/partials"},
			OutputStyle:  OutputStyleExpanded,
			Compiler:     CompilerEmbedded,
		}}},
		Server:  ServerConfig{Port: DefaultPort},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal config").Build()
	}

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
