package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/spf13/cobra"
)

const profilesTimeout = 10 * time.Second

// NewProfilesCmd creates the profiles command with explicit dependencies.
func NewProfilesCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewProfilesCmd: sessions dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "profiles",
		Short: "List stored profiles",
		Long: `List the profiles the storage backend holds settings for.
The active profile is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return withSession(sessions, func(s *session) error {
				ctx, cancel := context.WithTimeout(c.Context(), profilesTimeout)
				defer cancel()
				profiles, err := s.Backend.Profiles(ctx)
				if err != nil {
					return fmt.Errorf("failed to list profiles: %w", err)
				}
				active := s.Store.Profile()
				found := false
				for _, p := range profiles {
					if p == active {
						found = true
					}
				}
				if !found {
					profiles = append(profiles, active)
					sort.Strings(profiles)
				}
				for _, p := range profiles {
					marker := " "
					if p == active {
						marker = "*"
					}
					fmt.Fprintf(c.OutOrStdout(), "%s %s\n", marker, p)
				}
				return nil
			})
		},
	}
}

var profilesCmd = NewProfilesCmd(defaultSessions)

func init() {
	cmd.RootCmd.AddCommand(profilesCmd)
}
