package main

import (
	"fmt"
	"path/filepath"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/hooks"
	"github.com/spf13/cobra"
)

const hooksCommandLong = `Manage the scripts run around settings changes.

Executable files in <hooks_dir>/pre-set run before a change and may veto
it when hooks_failure_mode is abort. Files in <hooks_dir>/post-set run
after the change is stored. Scripts run in name order.

USAGE:
    roomprefs hooks <subcommand>

SUBCOMMANDS:
    init    Create the hook directories
    list    List the scripts of every hook point`

// NewHooksCmd creates the hooks command with explicit dependencies.
func NewHooksCmd(newRunner func() *hooks.Runner) *cobra.Command {
	if newRunner == nil {
		panic("NewHooksCmd: runner dependency cannot be nil")
	}

	hooksCmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage change hooks",
		Long:  hooksCommandLong,
	}

	hooksCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the hook directories",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			r := newRunner()
			if err := r.Init(); err != nil {
				return err
			}
			for _, point := range hooks.Points {
				colors.Success(fmt.Sprintf("created %s", filepath.Join(r.Dir(), point)))
			}
			return nil
		},
	})

	hooksCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hook scripts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			r := newRunner()
			out := c.OutOrStdout()
			for _, point := range hooks.Points {
				scripts := r.Scripts(point)
				fmt.Fprintf(out, "%s (%d):\n", point, len(scripts))
				for _, name := range scripts {
					fmt.Fprintf(out, "    %s\n", filepath.Join(r.Dir(), point, name))
				}
			}
			return nil
		},
	})

	return hooksCmd
}

var hooksCmd = NewHooksCmd(func() *hooks.Runner {
	return hooks.New(hooks.OptionsFromConfig())
})

func init() {
	cmd.RootCmd.AddCommand(hooksCmd)
}
