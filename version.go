package photometa

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the photometa library.
const Version = "0.1.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string
	GitCommit string // -ldflags, else the vcs.revision build setting
	BuildTime string // -ldflags, else the vcs.time build setting
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime can be set at build time:
//
//	go build -ldflags="-X github.com/simonhull/photometa.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/photometa.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/photometa
//
// Without ldflags the VCS stamp embedded by the go command is used, and
// "unknown" when there is none.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String formats v for the version command.
func (v VersionInfo) String() string {
	return fmt.Sprintf("photometa %s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
