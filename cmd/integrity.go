package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"site-settings/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check snapshot histories, templates and optional backends",
	Long:  `Scans every server folder for missing or undated snapshots and invalid JSON, validates the template files, and checks the audit table and archive bucket when they are configured.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		startTime := time.Now()

		return withApplication(func(a *application) error {
			report := a.integrity.Run(cmd.Context())

			if jsonOutput {
				filename := fmt.Sprintf("integrity_%d.json", startTime.Unix())
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				if err := os.WriteFile(filename, data, 0644); err != nil {
					return fmt.Errorf("failed to save JSON file: %w", err)
				}
				a.logger.Info("Detailed JSON report saved", zap.String("file", filename))
			}

			counts := map[checks.Problem]int{}
			for _, i := range report.Issues {
				counts[i.Problem]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n=== Integrity Report ===")
			fmt.Fprintf(out, "Root: %s\n", report.Root)
			fmt.Fprintf(out, "Servers: %d\n", report.Servers)
			fmt.Fprintf(out, "No Snapshots: %d\n", counts[checks.ProblemNoSnapshots])
			fmt.Fprintf(out, "Undated: %d\n", counts[checks.ProblemUndated])
			fmt.Fprintf(out, "Invalid JSON: %d\n", counts[checks.ProblemInvalidJSON])
			fmt.Fprintf(out, "Invalid Templates: %d\n", counts[checks.ProblemInvalidTemplate])
			fmt.Fprintf(out, "Missing Columns: %d\n", counts[checks.ProblemMissingColumn])
			fmt.Fprintf(out, "Bucket Missing: %d\n", counts[checks.ProblemBucketMissing])
			for _, e := range report.Errors {
				fmt.Fprintf(out, "Error: %s\n", e)
			}
			fmt.Fprintf(out, "Execution Time: %s\n", time.Since(startTime))

			if !report.Healthy {
				return fmt.Errorf("integrity check found %d issues and %d errors", len(report.Issues), len(report.Errors))
			}
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().Bool("json", false, "Save the detailed report as JSON")
}
