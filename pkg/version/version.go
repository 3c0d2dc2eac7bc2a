// Package version exposes build information set at link time.
package version

import "runtime/debug"

// Set with -ldflags "-X github.com/rshade/trustboard/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version = ""
	commit  = ""
)

// GetVersion returns the linked version, the module version recorded in
// the build info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetCommit returns the linked commit hash, or the VCS revision from the
// build info when available.
func GetCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}
