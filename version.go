package audiocatalog

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the audiocatalog module.
const Version = "0.1.0"

// Build metadata, set with -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/audiocatalog.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/audiocatalog.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// GetVersionInfo returns the version and build metadata. Fields not set via
// ldflags fall back to the VCS stamp embedded by the go tool, then to
// "unknown".
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

func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}
