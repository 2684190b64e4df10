package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/output"
	"github.com/vijay-prabhu/jobboard/internal/seed"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import companies and jobs from a YAML or JSON file",
	Long: `Import companies and job postings from a seed file.

The file holds two lists, companies and jobs, with snake_case keys.
Jobs refer to a company by company_id or by the company's name.
Records whose id already exists are skipped.

Example:
  companies:
    - name: Acme
      industry: Software
      size: 51-200
  jobs:
    - company: Acme
      title: Backend Engineer
      region: emea
      skills: [go, postgres]`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	file, err := seed.Load(args[0])
	if err != nil {
		return err
	}

	summary, err := seed.NewImporter(db, log).Import(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(summary)
	}

	fmt.Printf("Companies: %d created, %d skipped\n", summary.CompaniesCreated, summary.CompaniesSkipped)
	fmt.Printf("Jobs:      %d created, %d skipped\n", summary.JobsCreated, summary.JobsSkipped)
	return nil
}
