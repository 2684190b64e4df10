package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/output"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

var similarCmd = &cobra.Command{
	Use:   "similar <job-id>",
	Short: "Find jobs similar to a posting",
	Long: `Rank active postings in the same region by similarity to a job.

Examples:
  jobboard similar 6f1c2a3b-9d4e-4f00-8a00-000000000001
  jobboard similar <job-id> --limit 5
  jobboard similar <job-id> --debug       # show factor scores and steps
  jobboard similar <job-id> -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var (
	similarLimit int
	similarDebug bool
)

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().IntVar(&similarLimit, "limit", 0, "Number of results (default from config, capped at max_limit)")
	similarCmd.Flags().BoolVar(&similarDebug, "debug", false, "Include factor scores and ranking steps")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	engine, err := newEngine(cfg, db, log)
	if err != nil {
		return err
	}

	result, err := engine.FindSimilar(cmd.Context(), args[0], similarity.Options{
		Limit: similarLimit,
		Debug: similarDebug,
	})
	if err != nil {
		return err
	}

	return output.Output(outputFmt, result)
}
