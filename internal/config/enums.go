package config

import "github.com/mthadley/magnet-plugin-sass/internal/foundation/normalization"

// OutputStyle selects how compiled CSS is formatted.
type OutputStyle string

const (
	OutputStyleExpanded   OutputStyle = "expanded"
	OutputStyleCompressed OutputStyle = "compressed"
)

var outputStyleNormalizer = normalization.NewNormalizer("outputStyle", map[string]OutputStyle{
	"expanded":   OutputStyleExpanded,
	"compressed": OutputStyleCompressed,
}, OutputStyleExpanded)

// CompilerKind selects the stylesheet compiler backend.
type CompilerKind string

const (
	// CompilerEmbedded talks to Dart Sass over its embedded protocol.
	CompilerEmbedded CompilerKind = "embedded"
	// CompilerCLI shells out to the sass executable once per source.
	CompilerCLI CompilerKind = "cli"
)

var compilerNormalizer = normalization.NewNormalizer("compiler", map[string]CompilerKind{
	"embedded": CompilerEmbedded,
	"cli":      CompilerCLI,
}, CompilerEmbedded)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("logging.level", map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("logging.format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogLevel maps raw input to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}
