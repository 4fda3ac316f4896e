package main

import (
	"fmt"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/spf13/cobra"
)

const showCommandLong = `Display the settings of the active profile.

Sensitive values such as the access token are masked.

USAGE:
    roomprefs show [--format json|toml|yaml]

EXAMPLES:
    # Show the default profile as JSON
    roomprefs show

    # Show the work profile as YAML
    roomprefs --profile work show --format yaml`

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewShowCmd: sessions dependency cannot be nil")
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current settings",
		Long:  showCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			f, err := normalizeFormat(format)
			if err != nil {
				return err
			}
			return withSession(sessions, func(s *session) error {
				data, err := encodeSnapshot(s.Store.Snapshot().Redacted(), f)
				if err != nil {
					return fmt.Errorf("failed to encode settings: %w", err)
				}
				_, err = c.OutOrStdout().Write(data)
				return err
			})
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, toml or yaml")
	return showCmd
}

var showCmd = NewShowCmd(defaultSessions)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
