package storage

import (
	"context"
	"fmt"
	"sort"
)

// MigrationOptions configures a copy of profiles between backends.
type MigrationOptions struct {
	From Backend
	To   Backend
	// Profiles limits the run; empty means every profile in From.
	Profiles []string
	// Prune deletes keys in To that From does not have.
	Prune  bool
	DryRun bool
}

// MigrationStats summarizes a migration run.
type MigrationStats struct {
	Profiles  int
	Keys      int
	Copied    int
	Unchanged int
	Removed   int
	Skipped   []string
	DryRun    bool
}

// Migrate copies profiles from opts.From to opts.To. Values already equal
// in the destination are left alone, so runs are idempotent. A profile
// that fails to load is skipped and reported; a failing write aborts.
func Migrate(ctx context.Context, opts MigrationOptions) (MigrationStats, error) {
	stats := MigrationStats{DryRun: opts.DryRun}
	if opts.From == nil || opts.To == nil {
		return stats, fmt.Errorf("migration: source and destination are required")
	}

	profiles := opts.Profiles
	if len(profiles) == 0 {
		var err error
		profiles, err = opts.From.Profiles(ctx)
		if err != nil {
			return stats, fmt.Errorf("migration: list source profiles: %w", err)
		}
	}

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		src, err := opts.From.Load(ctx, profile)
		if err != nil {
			stats.Skipped = append(stats.Skipped, fmt.Sprintf("%s: %v", profile, err))
			continue
		}
		dst, err := opts.To.Load(ctx, profile)
		if err != nil {
			stats.Skipped = append(stats.Skipped, fmt.Sprintf("%s: %v", profile, err))
			continue
		}
		stats.Profiles++

		keys := make([]string, 0, len(src))
		for k := range src {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			stats.Keys++
			if current, ok := dst[key]; ok && current == src[key] {
				stats.Unchanged++
				continue
			}
			if !opts.DryRun {
				if err := opts.To.Store(ctx, profile, key, src[key]); err != nil {
					return stats, fmt.Errorf("migration: store %s/%s: %w", profile, key, err)
				}
			}
			stats.Copied++
		}

		if !opts.Prune {
			continue
		}
		for key := range dst {
			if _, ok := src[key]; ok {
				continue
			}
			if !opts.DryRun {
				if err := opts.To.Delete(ctx, profile, key); err != nil {
					return stats, fmt.Errorf("migration: delete %s/%s: %w", profile, key, err)
				}
			}
			stats.Removed++
		}
	}
	return stats, nil
}
