package main

import (
	"os"

	"github.com/cristianoliveira/roomprefs/cmd"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the CLI and returns the process exit code.
func run(execute func() error) int {
	if err := execute(); err != nil {
		return 1
	}
	return 0
}
