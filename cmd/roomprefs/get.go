package main

import (
	"fmt"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/spf13/cobra"
)

const getCommandLong = `Print the value of one setting.

Lists are printed as JSON arrays. Sensitive values are masked unless
--reveal is given.

USAGE:
    roomprefs get <key> [--reveal]

EXAMPLES:
    roomprefs get user/theme
    roomprefs get has_notifications`

// NewGetCmd creates the get command with explicit dependencies.
func NewGetCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewGetCmd: sessions dependency cannot be nil")
	}

	var reveal bool
	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Long:  getCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			key := args[0]
			return withSession(sessions, func(s *session) error {
				v, err := s.Store.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), formatValue(key, v, reveal))
				return nil
			})
		},
	}
	getCmd.Flags().BoolVar(&reveal, "reveal", false, "Print sensitive values in clear text")
	return getCmd
}

// formatValue renders v the way it is stored.
func formatValue(key string, v any, reveal bool) string {
	f, ok := settings.Lookup(key)
	if !ok {
		return fmt.Sprint(v)
	}
	if reveal && f.Sensitive {
		f.Sensitive = false
	}
	return settings.Format(f, v)
}

var getCmd = NewGetCmd(defaultSessions)

func init() {
	cmd.RootCmd.AddCommand(getCmd)
}
