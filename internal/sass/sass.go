// Package sass is the stylesheet plugin.
//
// At build time the Orchestrator compiles every configured source into
// <project>/.magnet/sass/<name>.css. At start time the Registrar mounts that
// directory under /css on the host's engine, once per Registrar.
package sass

import (
	"path/filepath"
	"strings"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
)

const (
	// Name is the plugin name and its key under magnet.pluginsConfig.
	Name = "sass"

	// OutputDirName is the output directory relative to the project root.
	OutputDirName = ".magnet/sass"

	// URLPrefix is where compiled stylesheets are served.
	URLPrefix = "/css"

	cssExt = ".css"
)

// OutputDir returns the directory compiled CSS is written to and served from.
func OutputDir(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(OutputDirName))
}

// OutputFile returns the CSS path for source inside outputDir: the source's
// base name with its extension replaced by .css.
func OutputFile(source, outputDir string) string {
	base := filepath.Base(source)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+cssExt)
}

// Sources returns the configured source list. An absent src yields an empty list.
func Sources(cfg config.SassConfig) []string {
	if len(cfg.Src) == 0 {
		return nil
	}
	out := make([]string, len(cfg.Src))
	copy(out, cfg.Src)
	return out
}

// resolve makes relative paths relative to the project root.
func resolve(projectDir, p string) string {
	if filepath.IsAbs(p) || projectDir == "" {
		return p
	}
	return filepath.Join(projectDir, p)
}
