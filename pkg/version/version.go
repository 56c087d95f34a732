// Package version exposes the binary's build metadata. Release builds set
// the variables below via ldflags; anything left unset is filled from the
// build info the Go toolchain embeds, so local builds still report a usable
// commit and Go version.
package version

import "runtime/debug"

// Version is the release version.
// Set via -ldflags "-X github.com/pr-review-toolkit/review-runner/pkg/version.Version=...";
// local builds report "dev".
var Version = "dev"

// BuildDate is the build timestamp, set via ldflags like Version.
var BuildDate = "unknown"

// GitCommit and GoVersion may be set via ldflags; when empty they fall back
// to the toolchain's embedded build info.
var (
	GitCommit string
	GoVersion string
)

// String returns the bare version.
func String() string {
	return Version
}

// FullString returns a human-readable version line.
func FullString() string {
	if Version == "dev" {
		return "review-runner development version"
	}
	return "review-runner " + Version
}

// Info returns all version fields, resolving commit and Go version from
// debug.ReadBuildInfo when ldflags left them empty.
func Info() map[string]string {
	commit := GitCommit
	goVersion := GoVersion

	if bi, ok := debug.ReadBuildInfo(); ok {
		if goVersion == "" {
			goVersion = bi.GoVersion
		}
		if commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
					break
				}
			}
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if goVersion == "" {
		goVersion = "unknown"
	}

	return map[string]string{
		"version":   Version,
		"buildDate": BuildDate,
		"gitCommit": commit,
		"goVersion": goVersion,
	}
}
