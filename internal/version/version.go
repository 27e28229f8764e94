// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/mthadley/magnet-plugin-sass/internal/version.Version=v1.2.0" ./cmd/magnet
package version

import "fmt"

// Version is the release version.
var Version = "unknown"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line summary suitable for --version output.
func String() string {
	return fmt.Sprintf("magnet %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
