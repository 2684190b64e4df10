package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/output"
	"github.com/vijay-prabhu/jobboard/internal/tracker"
)

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Mark active postings past their expiry date as expired",
	Long: `Run one expiry sweep.

'jobboard serve' runs the same sweep periodically (tracking.expiry_sweep_minutes).`,
	RunE: runExpire,
}

func init() {
	rootCmd.AddCommand(expireCmd)
}

func runExpire(cmd *cobra.Command, args []string) error {
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

	result, err := tracker.New(db, log).Sweep(cmd.Context())
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		return output.JSON(map[string]interface{}{
			"checked": result.Checked,
			"expired": result.Expired,
			"errors":  len(result.Errors),
		})
	}

	fmt.Printf("Checked %d active postings, expired %d\n", result.Checked, len(result.Expired))
	for _, err := range result.Errors {
		fmt.Printf("  error: %v\n", err)
	}
	return nil
}
