package main

import (
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(current func() string) *cobra.Command {
	if current == nil {
		panic("NewVersionCmd: version dependency cannot be nil")
	}

	var asJSON bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of roomprefs. --json adds the build details.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprintf(c.OutOrStdout(), "roomprefs version %s\n", current())
				return nil
			}
			info := version.Get()
			info.Version = current()
			enc := json.NewEncoder(c.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return versionCmd
}

var versionCmd = NewVersionCmd(cmd.GetVersion)

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
