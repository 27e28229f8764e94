package plugin

import (
	"fmt"
	"sync"
)

// Registry manages plugin registration and lookup.
// Plugins are kept in registration order, which is the order lifecycles run in.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	plugins map[string]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, calling Init for lifecycle plugins.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := p.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered", metadata.Name)
	}

	if lc, ok := p.(PluginLifecycle); ok {
		if err := lc.Init(); err != nil {
			return NewPluginError(metadata.Name, PhaseInit, err)
		}
	}

	r.plugins[metadata.Name] = p
	r.order = append(r.order, metadata.Name)
	return nil
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return p, nil
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.plugins[name])
	}
	return result
}

// ListByType returns all plugins of a specific type in registration order.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	var result []Plugin
	for _, p := range r.List() {
		if p.Metadata().Type == pluginType {
			result = append(result, p)
		}
	}
	return result
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.plugins[name]
	return ok
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// Cleanup calls Cleanup on every lifecycle plugin in reverse registration
// order and returns the first error encountered.
func (r *Registry) Cleanup() error {
	plugins := r.List()
	var first error
	for i := len(plugins) - 1; i >= 0; i-- {
		lc, ok := plugins[i].(PluginLifecycle)
		if !ok {
			continue
		}
		if err := lc.Cleanup(); err != nil && first == nil {
			first = NewPluginError(lc.Metadata().Name, PhaseCleanup, err)
		}
	}
	return first
}
