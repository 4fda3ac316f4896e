package main

import (
	"fmt"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/spf13/cobra"
)

const setCommandLong = `Change one setting of the active profile.

The value is parsed according to the setting's type: true/false for
switches, numbers for sizes, and comma separated words for lists.
pre-set hooks may reject the change.

USAGE:
    roomprefs set <key> <value>

EXAMPLES:
    roomprefs set user/theme dark
    roomprefs set user/font_size 12.5
    roomprefs set user/hidden_tags "m.lowpriority, u.work"`

// NewSetCmd creates the set command with explicit dependencies.
func NewSetCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewSetCmd: sessions dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  setCommandLong,
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			key, text := args[0], args[1]
			return withSession(sessions, func(s *session) error {
				if err := s.Store.SetString(key, text); err != nil {
					return fmt.Errorf("failed to set %s: %w", key, err)
				}
				v, err := s.Store.Get(key)
				if err != nil {
					return err
				}
				colors.Success(fmt.Sprintf("%s = %s", key, formatValue(key, v, false)))
				return nil
			})
		},
	}
}

var setCmd = NewSetCmd(defaultSessions)

func init() {
	cmd.RootCmd.AddCommand(setCmd)
}
