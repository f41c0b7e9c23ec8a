// Package misc keeps program identity helpers in one place so they could be
// used everywhere without creating import cycles.
package misc

import (
	"runtime/debug"
)

const appName = "cssb"

// set by linker during the build, see Taskfile
var appVersion = "development"

// GetAppName returns short program name to be used in logs, reports and
// temporary file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set during the build.
func GetVersion() string {
	return appVersion
}

// GetGitHash returns VCS revision recorded in the build information if any.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 8 {
				return s.Value[:8]
			}
			return s.Value
		}
	}
	return "unknown"
}
