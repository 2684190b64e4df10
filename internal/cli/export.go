package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export job postings to CSV or JSON",
	Long: `Export job postings to stdout.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of postings with their companies

Examples:
  jobboard export --format=csv > jobs.csv
  jobboard export --format=json --status=active > active.json`,
	RunE: runExport,
}

var (
	exportFormat string
	exportStatus string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only export postings with this status")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != output.FormatCSV && exportFormat != output.FormatJSON {
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var opts database.ListOptions
	if exportStatus != "" {
		status := database.JobStatus(exportStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid status: %s", exportStatus)
		}
		opts.Status = &status
	}

	jobs, err := db.ListJobs(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []database.Job{}
	}

	return output.OutputTo(os.Stdout, exportFormat, jobs)
}
