// Package cmd holds the root command shared by the roomprefs binary.
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/cristianoliveira/roomprefs/internal/errors"
	"github.com/cristianoliveira/roomprefs/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	profileFlag string
	backendFlag string
	debugFlag   bool
	quietFlag   bool

	// RunID correlates the log lines of one invocation.
	RunID string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "roomprefs",
	Short:             "Manage chat client preferences per profile.",
	Long:              `Manage chat client preferences per profile.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and reports a failure through the CLI
// error handler.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		errors.Report(errors.NewDefaultCLIHandler(), err)
		logging.GetGlobal().Error("command failed", "error", err)
	}
	if shutdownErr := logging.ShutdownGlobal(); shutdownErr != nil {
		colors.Debug(fmt.Sprintf("failed to close log file: %v", shutdownErr))
	}
	return err
}

// setup applies global flags on top of the loaded configuration and starts
// logging for the run.
func setup(cmd *cobra.Command, args []string) error {
	if backendFlag != "" {
		config.Set("store_backend", backendFlag)
	}
	if profileFlag != "" {
		config.Set("default_profile", profileFlag)
	}
	if debugFlag {
		config.Set("debug", "true")
	}
	if quietFlag {
		config.Set("quiet", "true")
	}
	config.Load()

	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	RunID = uuid.NewString()
	if err := logging.InitGlobal(RunID); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.GetGlobal().Info("command started", "command", cmd.CommandPath())
	return nil
}

func init() {
	RootCmd.Version = Version

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			defaultHelp(cmd)
			return
		}
		PrintHelp(cmd)
	})

	RootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Settings profile to use (default from config)")
	RootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: toml, sqlite, redis, dual or memory")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only print errors")
}
