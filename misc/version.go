// Package misc keeps build identity helpers used across the program.
package misc

import "runtime/debug"

// set at build time via -ldflags "-X cssel/misc.version=..."
var (
	appName = "cssel"
	version = "dev"
)

// GetAppName returns program name used for logger naming and similar.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns VCS revision recorded in build info, if any.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}
