package cmd

import (
	"fmt"
	"io"
	"os"
)

// Version is the version of roomprefs. Release builds set it with -ldflags.
var Version = "0.1.0"

// versionOutputWriter overrides where PrintVersion writes. Nil means stdout.
var versionOutputWriter io.Writer

// GetVersion returns the current version.
func GetVersion() string {
	return Version
}

// PrintVersion writes the version line.
func PrintVersion() {
	w := versionOutputWriter
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "roomprefs v%s\n", Version)
}
