package main

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/spf13/cobra"
)

const keysCommandLong = `List every setting key with its type and default value.

USAGE:
    roomprefs keys [--prefix PREFIX]

EXAMPLES:
    roomprefs keys
    roomprefs keys --prefix auth/`

// NewKeysCmd creates the keys command. It needs no store.
func NewKeysCmd() *cobra.Command {
	var prefix string
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List setting keys",
		Long:  keysCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			for _, f := range settings.Fields() {
				if !strings.HasPrefix(f.Key, prefix) {
					continue
				}
				line := fmt.Sprintf("%-42s %-20s %s", f.Key, f.Kind, settings.Format(f, f.Default))
				if f.Ranged {
					line += fmt.Sprintf("  [%g..%g]", f.Min, f.Max)
				}
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			if strings.HasPrefix(settings.KeyHasNotifications, prefix) {
				fmt.Fprintf(out, "%-42s %-20s %s\n", settings.KeyHasNotifications, settings.KindBool, "(read-only)")
			}
			return nil
		},
	}
	keysCmd.Flags().StringVar(&prefix, "prefix", "", "Only list keys starting with PREFIX")
	return keysCmd
}

var keysCmd = NewKeysCmd()

func init() {
	cmd.RootCmd.AddCommand(keysCmd)
}
