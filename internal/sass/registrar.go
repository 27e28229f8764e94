package sass

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
	"github.com/mthadley/magnet-plugin-sass/internal/metrics"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
)

// Registrar mounts the output directory on the host engine at most once.
// Each Registrar keeps its own serving state.
type Registrar struct {
	mu       sync.Mutex
	serving  bool
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewRegistrar returns a Registrar that has not mounted anything yet.
func NewRegistrar(opts ...Option) *Registrar {
	o := buildOptions(opts)
	return &Registrar{recorder: o.recorder, logger: o.logger}
}

// Start mounts a static handler for OutputDir(host.Directory()) at URLPrefix
// on the first call and does nothing afterwards. Panics from the engine are
// not recovered and leave the Registrar unmounted.
func (r *Registrar) Start(_ context.Context, host plugin.Host) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.serving {
		return nil
	}

	dir := OutputDir(host.Directory())
	host.Server().Engine().Mount(URLPrefix, StaticHandler(dir))
	r.serving = true

	r.recorder.IncStaticMount(URLPrefix)
	r.logger.Info("Serving compiled stylesheets", logfields.Path(URLPrefix), logfields.Output(dir))
	return nil
}

// Serving reports whether Start has mounted the handler.
func (r *Registrar) Serving() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serving
}

// StaticHandler serves files from dir under URLPrefix. Directories are not listed.
func StaticHandler(dir string) http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(filesOnly{http.Dir(dir)}))
}

// filesOnly hides directories so requests for them 404.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
