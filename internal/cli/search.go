package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search job postings",
	Long: `Search postings by title, department, location, skill or company name.

Examples:
  jobboard search golang
  jobboard search "data engineer"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	query := strings.Join(args, " ")
	jobs, err := db.SearchJobs(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search error: %w", err)
	}

	return output.Output(outputFmt, jobs)
}
