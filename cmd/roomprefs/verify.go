package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/storage"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command with explicit dependencies.
func NewVerifyCmd(sessions sessionOpener) *cobra.Command {
	if sessions == nil {
		panic("NewVerifyCmd: sessions dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "verify",
		Short: "Compare both stores of the dual backend",
		Long: `Compare the active profile in the primary and secondary store of the
dual backend and report keys that are missing or differ. Exits with an
error when they disagree.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return withSession(sessions, func(s *session) error {
				dual, ok := s.Backend.(*storage.DualBackend)
				if !ok {
					return fmt.Errorf("verify needs the dual backend, current backend is %s", s.BackendName)
				}
				ctx, cancel := context.WithTimeout(c.Context(), profilesTimeout)
				defer cancel()
				report, err := dual.Verify(ctx, s.Store.Profile())
				if err != nil {
					return err
				}
				printReport(c, report, dual.Metrics())
				if !report.Consistent {
					return fmt.Errorf("profile %s differs between the dual backend stores", report.Profile)
				}
				return nil
			})
		},
	}
}

func printReport(c *cobra.Command, report storage.ConsistencyReport, metrics storage.WriteMetrics) {
	out := c.OutOrStdout()
	fmt.Fprintf(out, "profile=%s primary=%d secondary=%d consistent=%t\n",
		report.Profile, report.PrimaryCount, report.SecondaryCount, report.Consistent)
	if len(report.MissingInPrimary) > 0 {
		fmt.Fprintf(out, "missing in primary: %s\n", strings.Join(report.MissingInPrimary, ", "))
	}
	if len(report.MissingInSecondary) > 0 {
		fmt.Fprintf(out, "missing in secondary: %s\n", strings.Join(report.MissingInSecondary, ", "))
	}
	for _, d := range report.Diffs {
		fmt.Fprintf(out, "differs: %s primary=%q secondary=%q\n", d.Key, d.Primary, d.Secondary)
	}
	fmt.Fprintf(out, "writes=%d primary_failures=%d secondary_failures=%d avg_latency=%s\n",
		metrics.WriteOperations, metrics.PrimaryWriteFailures, metrics.SecondaryWriteFailures, metrics.AverageWriteLatency())
}

var verifyCmd = NewVerifyCmd(defaultSessions)

func init() {
	cmd.RootCmd.AddCommand(verifyCmd)
}
