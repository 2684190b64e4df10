package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

var statusCmd = &cobra.Command{
	Use:   "status <job-id> <status>",
	Short: "Change the status of a job posting",
	Long: `Change a posting's status. Only active postings are recommended.

Valid statuses: active, draft, closed, expired

Examples:
  jobboard status <job-id> closed
  jobboard status <job-id> active`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	id := args[0]
	status := database.JobStatus(args[1])

	if err := similarity.ValidateJobID(id); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status: %s (use active, draft, closed or expired)", args[1])
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.UpdateJobStatus(cmd.Context(), id, status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	fmt.Printf("Job %s is now %s\n", id, status)
	return nil
}
