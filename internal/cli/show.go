package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/output"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

var showCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show job details",
	Long: `Show the full details of a job posting and its company.

Examples:
  jobboard show 6f1c2a3b-9d4e-4f00-8a00-000000000001
  jobboard show <job-id> -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := similarity.ValidateJobID(args[0]); err != nil {
		return err
	}

	job, err := db.GetJob(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if job == nil {
		return fmt.Errorf("job not found: %s", args[0])
	}

	return output.Output(outputFmt, job)
}
