// Package version embeds build information into the pipeline binaries.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kavyahq/storyeval/version.Version=1.0.0"
//
// and fall back to VCS stamps from the Go build info.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Short returns the version string shown by the -version flag.
func Short() string {
	commit := GitCommit
	dirty := false

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "" {
					commit = setting.Value
				}
			case "vcs.modified":
				dirty = setting.Value == "true"
			}
		}
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	switch {
	case commit == "":
		return Version
	case dirty:
		return fmt.Sprintf("%s-%s-dirty", Version, commit)
	default:
		return fmt.Sprintf("%s-%s", Version, commit)
	}
}
