package plugin

import (
	"net/http"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
)

// Host is what the embedding framework exposes to plugins.
type Host interface {
	// Config returns the loaded configuration, including magnet.pluginsConfig.
	Config() *config.Config

	// Directory returns the absolute project root.
	Directory() string

	// Server returns the host HTTP server.
	Server() Server
}

// Server is the host HTTP server as seen by plugins.
type Server interface {
	// Engine returns the request-handling engine routes are attached to.
	Engine() Engine
}

// Engine accepts sub-handlers mounted under a path prefix.
// chi.Router satisfies it.
type Engine interface {
	Mount(pattern string, handler http.Handler)
}
