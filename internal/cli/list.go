package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Long: `List job postings with optional filters, newest first.

Examples:
  jobboard list                          # List all postings
  jobboard list --status=active          # Only active postings
  jobboard list --region=emea --since=7d # Recent postings in a region
  jobboard list -o json                  # Output as JSON`,
	RunE: runList,
}

var (
	listStatus  string
	listRegion  string
	listCompany string
	listSince   string
	listLimit   int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (active, draft, closed, expired)")
	listCmd.Flags().StringVar(&listRegion, "region", "", "Filter by region")
	listCmd.Flags().StringVar(&listCompany, "company", "", "Filter by company ID")
	listCmd.Flags().StringVar(&listSince, "since", "", "Filter by time (e.g., 7d, 2w, 1m)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runList(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := database.ListOptions{
		Limit: listLimit,
	}

	if listStatus != "" {
		status := database.JobStatus(listStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid status: %s", listStatus)
		}
		opts.Status = &status
	}
	if listRegion != "" {
		opts.Region = &listRegion
	}
	if listCompany != "" {
		opts.CompanyID = &listCompany
	}

	if listSince != "" {
		since, err := parseDuration(listSince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-since)
		opts.Since = &sinceTime
	}

	jobs, err := db.ListJobs(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	return output.Output(outputFmt, jobs)
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}
	if value < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}

	switch unit {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use d, w, or m)", unit)
	}
}
