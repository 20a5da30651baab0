package audioinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the audioinfo module.
const Version = "0.3.0"

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// String formats the build information on one line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("audioinfo %s (commit %s, built %s, %s)", b.Version, b.GitCommit, b.BuildTime, b.GoVersion)
}

// GetBuildInfo returns the version and build details.
//
// GitCommit and BuildTime come from -ldflags when set:
//
//	go build -ldflags="-X github.com/simonhull/audioinfo.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/audioinfo.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/audioinfo
//
// Otherwise the VCS stamp recorded by the Go toolchain is used, and
// "unknown" if there is none.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
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

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
