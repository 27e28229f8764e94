package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeAsset compiles or copies static assets at build time.
	PluginTypeAsset PluginType = "asset"

	// PluginTypeTransform rewrites source modules it claims through Test.
	PluginTypeTransform PluginType = "transform"

	// PluginTypeServer only extends the HTTP server.
	PluginTypeServer PluginType = "server"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeAsset, PluginTypeTransform, PluginTypeServer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t PluginType) String() string {
	return string(t)
}

// Lifecycle phase names used in errors and logs.
const (
	PhaseInit    = "init"
	PhaseBuild   = "build"
	PhaseStart   = "start"
	PhaseCleanup = "cleanup"
)

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation is the lifecycle phase that failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
