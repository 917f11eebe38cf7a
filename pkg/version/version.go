// Package version reports which build of archivist is running.
//
// Release builds inject the values with ldflags:
//
//	-ldflags "-X github.com/wlame/archivist/pkg/version.Version=1.0.0 \
//	          -X github.com/wlame/archivist/pkg/version.Commit=abc123 \
//	          -X github.com/wlame/archivist/pkg/version.BuildTime=2025-11-26T10:30:00Z"
//
// Builds made with `go install` or `go build` carry no ldflags; for those the
// module version and VCS stamp recorded by the Go toolchain fill the gaps.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time with ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`

	// Modified is true when the working tree had uncommitted changes at build time
	Modified bool `json:"modified"`

	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information, preferring ldflags values over build info
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

// resolve merges ldflags values with the toolchain's build info (may be nil)
func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	return info
}

// ShortCommit returns the first 7 characters of the commit hash
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// String returns a human-readable version string
// Example output: "archivist version 1.0.0 (commit: abc1234, built: 2025-11-26T10:30:00Z)"
func String() string {
	return Get().String()
}

func (i Info) String() string {
	commit := i.ShortCommit()
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("archivist version %s (commit: %s, built: %s)",
		i.Version, commit, i.BuildTime)
}

// Short returns just the version number, e.g. "1.0.0" or "dev"
func Short() string {
	return Get().Version
}
