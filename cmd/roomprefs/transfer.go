package main

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/spf13/cobra"
)

const exportCommandLong = `Write the settings of the active profile to a file.

The format follows the file extension (.json, .toml, .yaml) unless
--format is given. The access token is masked unless --include-secrets
is given.

USAGE:
    roomprefs export <file> [--format FORMAT] [--include-secrets]

EXAMPLES:
    roomprefs export backup.toml
    roomprefs --profile work export work.yaml`

const importCommandLong = `Apply a snapshot file to the active profile.

Every value is validated before anything is written. Settings missing
from the file are reset to their defaults. A masked access token keeps
the current token.

USAGE:
    roomprefs import <file> [--format FORMAT]

EXAMPLES:
    roomprefs import backup.toml
    roomprefs --profile laptop import work.yaml`

// maskedSecret is what settings.Format shows for a sensitive value.
const maskedSecret = "********"

// NewExportCmd creates the export command with explicit dependencies.
func NewExportCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewExportCmd: sessions dependency cannot be nil")
	}

	var format string
	var includeSecrets bool
	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export settings to a file",
		Long:  exportCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := args[0]
			f, err := resolveFormat(path, format)
			if err != nil {
				return err
			}
			return withSession(sessions, func(s *session) error {
				snap := s.Store.Snapshot()
				if !includeSecrets {
					snap = snap.Redacted()
				}
				data, err := encodeSnapshot(snap, f)
				if err != nil {
					return fmt.Errorf("failed to encode settings: %w", err)
				}
				if err := os.WriteFile(path, data, config.FileModeFile); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				colors.Success(fmt.Sprintf("Exported profile %s to %s", s.Store.Profile(), path))
				return nil
			})
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "", "File format: json, toml or yaml (default from extension)")
	exportCmd.Flags().BoolVar(&includeSecrets, "include-secrets", false, "Write sensitive values in clear text")
	return exportCmd
}

// NewImportCmd creates the import command with explicit dependencies.
func NewImportCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewImportCmd: sessions dependency cannot be nil")
	}

	var format string
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import settings from a file",
		Long:  importCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := args[0]
			f, err := resolveFormat(path, format)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			snap, err := decodeSnapshot(data, f)
			if err != nil {
				return err
			}
			return withSession(sessions, func(s *session) error {
				if snap.Auth.AccessToken == maskedSecret {
					snap.Auth.AccessToken = s.Store.AccessToken()
				}
				if err := s.Store.Apply(snap); err != nil {
					return fmt.Errorf("failed to import %s: %w", path, err)
				}
				colors.Success(fmt.Sprintf("Imported %s into profile %s", path, s.Store.Profile()))
				return nil
			})
		},
	}
	importCmd.Flags().StringVarP(&format, "format", "f", "", "File format: json, toml or yaml (default from extension)")
	return importCmd
}

func resolveFormat(path, flag string) (string, error) {
	if flag != "" {
		return normalizeFormat(flag)
	}
	return formatForPath(path)
}

var (
	exportCmd = NewExportCmd(defaultSessions)
	importCmd = NewImportCmd(defaultSessions)
)

func init() {
	cmd.RootCmd.AddCommand(exportCmd)
	cmd.RootCmd.AddCommand(importCmd)
}
