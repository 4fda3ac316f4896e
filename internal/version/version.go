// Package version provides build information for roomprefs.
package version

import (
	"fmt"
	"runtime"
)

// Version is the release version, set at build time with -ldflags.
var Version = "development"

// Commit is the git commit hash, set at build time with -ldflags.
var Commit = "unknown"

// Date is the build date, set at build time with -ldflags.
var Date = "unknown"

// String returns the version including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// Info is the machine-readable build description printed by `version --json`.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
