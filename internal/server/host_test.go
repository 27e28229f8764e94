package server

import (
	"github.com/mthadley/magnet-plugin-sass/internal/config"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
)

// serverHost exposes a real Server through plugin.Host.
type serverHost struct {
	cfg *config.Config
	dir string
	srv *Server
}

func (h *serverHost) Config() *config.Config { return h.cfg }
func (h *serverHost) Directory() string       { return h.dir }
func (h *serverHost) Server() plugin.Server   { return h.srv }
