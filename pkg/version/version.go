// Package version exposes build metadata for the modelkit binary.
package version

import (
	"runtime/debug"
)

// Version is set via ldflags on release builds.
var Version string

// GetVersion returns the release version when set, otherwise the VCS
// revision embedded in the build info.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return getRevision()
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			if len(v.Value) > 7 {
				rev = v.Value[:7]
			} else {
				rev = v.Value
			}

		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
