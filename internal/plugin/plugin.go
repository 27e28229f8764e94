// Package plugin defines the contract between the magnet host and its plugins.
//
// A plugin takes part in two lifecycle phases: Build, run at build time to
// produce artifacts, and Start, run when the host's HTTP server is being
// prepared. Test is queried by the host to decide whether a plugin claims a
// module by inspecting it.
package plugin

import (
	"context"
	"fmt"
)

// Plugin represents a magnet plugin with metadata and lifecycle methods.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type).
	Metadata() PluginMetadata

	// Build runs at build time.
	Build(ctx context.Context, host Host) error

	// Start runs when the host server is being set up, before it listens.
	Start(ctx context.Context, host Host) error

	// Test reports whether the plugin claims source modules by inspection.
	Test() bool
}

// PluginLifecycle extends Plugin with optional lifecycle hooks.
type PluginLifecycle interface {
	Plugin

	// Init is called once when the plugin is registered.
	Init() error

	// Cleanup is called when the host shuts down.
	Cleanup() error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the unique plugin identifier and the key of its block in
	// magnet.pluginsConfig.
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// BasePlugin provides default implementations for the optional hooks.
// Plugins can embed this to avoid implementing them.
type BasePlugin struct{}

// Init is a no-op default implementation.
func (b *BasePlugin) Init() error {
	return nil
}

// Cleanup is a no-op default implementation.
func (b *BasePlugin) Cleanup() error {
	return nil
}

// Start is a no-op default implementation.
func (b *BasePlugin) Start(context.Context, Host) error {
	return nil
}
