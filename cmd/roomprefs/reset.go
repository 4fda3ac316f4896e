package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const resetCommandLong = `Reset settings of the active profile to their defaults.

With a key only that setting is reset. Without a key every setting is
reset after confirmation; --force skips the question. When stdin is not a
terminal --force is required.

USAGE:
    roomprefs reset [<key>] [--force]

EXAMPLES:
    # Reset the theme
    roomprefs reset user/theme

    # Reset everything without confirmation
    roomprefs reset --force`

// confirmer asks whether every setting may be reset.
type confirmer func(in io.Reader, out io.Writer) (bool, error)

// NewResetCmd creates the reset command with explicit dependencies.
func NewResetCmd(sessions sessionOpener, confirm confirmer) *cobra.Command {
	if sessions == nil {
		panic("NewResetCmd: sessions dependency cannot be nil")
	}
	if confirm == nil {
		panic("NewResetCmd: confirm dependency cannot be nil")
	}

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset [<key>]",
		Short: "Reset settings to defaults",
		Long:  resetCommandLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 1 {
				key := args[0]
				return withSession(sessions, func(s *session) error {
					if err := s.Store.Reset(key); err != nil {
						return fmt.Errorf("failed to reset %s: %w", key, err)
					}
					colors.Success(fmt.Sprintf("%s reset to default", key))
					return nil
				})
			}

			if !force {
				ok, err := confirm(c.InOrStdin(), c.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					colors.Info("Operation cancelled")
					return nil
				}
			}
			return withSession(sessions, func(s *session) error {
				if err := s.Store.ResetAll(); err != nil {
					return fmt.Errorf("failed to reset settings: %w", err)
				}
				colors.Success(fmt.Sprintf("Settings of profile %s reset to defaults", s.Store.Profile()))
				return nil
			})
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "Reset without confirmation")
	return resetCmd
}

// confirmOnTerminal asks on the terminal and refuses when stdin is not one.
func confirmOnTerminal(in io.Reader, out io.Writer) (bool, error) {
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("refusing to reset without --force: stdin is not a terminal")
	}
	return confirmReset(in, out)
}

// confirmReset reads a yes/no answer. Anything but y or yes is a no.
func confirmReset(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "Are you sure you want to reset all settings to defaults? (y/N): ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, nil
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}

var resetCmd = NewResetCmd(defaultSessions, confirmOnTerminal)

func init() {
	cmd.RootCmd.AddCommand(resetCmd)
}
