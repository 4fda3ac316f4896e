package main

import (
	"errors"
	"fmt"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/spf13/cobra"
)

const migrateCommandLong = `Copy settings between storage backends.

Values already present and equal in the destination are left alone, so
the migration can be run again safely. Profiles that cannot be read are
skipped with a warning.

Use --dry-run to report what would change without writing.
Use --prune to delete destination keys the source does not have.

USAGE:
    roomprefs migrate --from BACKEND --to BACKEND [OPTIONS]

EXAMPLES:
    roomprefs migrate --from toml --to sqlite --dry-run
    roomprefs migrate --from sqlite --to redis --profiles default,work`

// backendOpener opens a named backend without falling back.
type backendOpener func(name string) (storage.Backend, error)

type migrateFlags struct {
	from     string
	to       string
	profiles []string
	dryRun   bool
	prune    bool
}

// NewMigrateCmd creates the migrate command with explicit dependencies.
func NewMigrateCmd(open backendOpener) *cobra.Command {
	if open == nil {
		panic("NewMigrateCmd: open dependency cannot be nil")
	}

	var flags migrateFlags
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy settings between backends",
		Long:  migrateCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runMigrate(c, open, flags)
		},
	}
	migrateCmd.Flags().StringVar(&flags.from, "from", "", "Source backend: toml, sqlite, redis or memory")
	migrateCmd.Flags().StringVar(&flags.to, "to", "", "Destination backend: toml, sqlite, redis or memory")
	migrateCmd.Flags().StringSliceVar(&flags.profiles, "profiles", nil, "Only migrate these profiles (default: all)")
	migrateCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report changes without writing")
	migrateCmd.Flags().BoolVar(&flags.prune, "prune", false, "Delete destination keys missing from the source")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")
	return migrateCmd
}

func runMigrate(c *cobra.Command, open backendOpener, flags migrateFlags) (err error) {
	if flags.from == flags.to {
		return fmt.Errorf("migrate: --from and --to must differ")
	}
	for _, p := range flags.profiles {
		if _, err := storage.ResolveProfile(p); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	from, err := open(flags.from)
	if err != nil {
		return fmt.Errorf("migrate: open source: %w", err)
	}
	defer func() { err = errors.Join(err, from.Close()) }()
	to, err := open(flags.to)
	if err != nil {
		return fmt.Errorf("migrate: open destination: %w", err)
	}
	defer func() { err = errors.Join(err, to.Close()) }()

	stats, err := storage.Migrate(c.Context(), storage.MigrationOptions{
		From:     from,
		To:       to,
		Profiles: flags.profiles,
		Prune:    flags.prune,
		DryRun:   flags.dryRun,
	})
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	if stats.DryRun {
		fmt.Fprintf(out, "dry run: nothing was written\n")
	} else {
		fmt.Fprintf(out, "migration completed\n")
	}
	fmt.Fprintf(out, "profiles=%d keys=%d copied=%d unchanged=%d removed=%d skipped=%d\n",
		stats.Profiles, stats.Keys, stats.Copied, stats.Unchanged, stats.Removed, len(stats.Skipped))
	for _, skipped := range stats.Skipped {
		fmt.Fprintf(out, "warning: skipped %s\n", skipped)
	}
	return nil
}

var migrateCmd = NewMigrateCmd(storage.Open)

func init() {
	cmd.RootCmd.AddCommand(migrateCmd)
}
