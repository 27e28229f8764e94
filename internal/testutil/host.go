package testutil

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
)

// Mount is one recorded Engine.Mount call.
type Mount struct {
	Pattern string
	Handler http.Handler
}

// Engine records mounts and dispatches requests to them by prefix.
// Mounting the same pattern twice panics, as chi does.
type Engine struct {
	mu     sync.Mutex
	mounts []Mount
}

// Mount implements plugin.Engine.
func (e *Engine) Mount(pattern string, h http.Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, m := range e.mounts {
		if m.Pattern == pattern {
			panic(fmt.Sprintf("attempting to Mount() a handler on an existing path, '%s'", pattern))
		}
	}
	e.mounts = append(e.mounts, Mount{Pattern: pattern, Handler: h})
}

// Mounts returns a copy of the recorded mounts.
func (e *Engine) Mounts() []Mount {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Mount, len(e.mounts))
	copy(out, e.mounts)
	return out
}

// ServeHTTP routes to the first mount whose pattern prefixes the path.
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, m := range e.Mounts() {
		if r.URL.Path == m.Pattern || strings.HasPrefix(r.URL.Path, m.Pattern+"/") {
			m.Handler.ServeHTTP(w, r)
			return
		}
	}
	http.NotFound(w, r)
}

// Host is a plugin.Host backed by fixed values.
type Host struct {
	Cfg    *config.Config
	Dir    string
	Engine *Engine
}

var _ plugin.Host = (*Host)(nil)

// NewHost returns a Host rooted at dir with a fresh Engine.
func NewHost(cfg *config.Config, dir string) *Host {
	return &Host{Cfg: cfg, Dir: dir, Engine: &Engine{}}
}

func (h *Host) Config() *config.Config { return h.Cfg }

func (h *Host) Directory() string { return h.Dir }

func (h *Host) Server() plugin.Server { return server{h.Engine} }

type server struct{ engine *Engine }

func (s server) Engine() plugin.Engine { return s.engine }
