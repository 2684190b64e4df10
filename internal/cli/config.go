package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'jobboard config show' to view current configuration")
		return nil
	}

	// The template must stay loadable
	cfg, err := config.Parse([]byte(defaultConfig))
	if err != nil {
		return fmt.Errorf("default config is invalid: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Load postings with 'jobboard import jobs.yaml'")
	fmt.Println("  2. Try 'jobboard similar <job-id>'")
	fmt.Println("  3. Run 'jobboard serve' to expose the HTTP API")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'jobboard config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# jobboard configuration

[server]
host = "127.0.0.1"
port = 8080
read_timeout_seconds = 10
write_timeout_seconds = 15
shutdown_timeout_seconds = 10

[database]
path = "~/.local/share/jobboard/jobboard.db"

[recommend]
candidate_pool_size = 200   # postings fetched per request
default_limit = 3
max_limit = 10
description_length = 150    # runes kept in result descriptions
same_company_boost = 1.25   # multiplier for postings from the target's company
workers = 4                 # parallel scorers, 0 or 1 scores sequentially
strict_diversity = false    # true makes the per-company cap a hard limit

[logging]
json = false
debug = false

[tracking]
expiry_sweep_minutes = 60   # expire overdue postings while serving, 0 disables

[telemetry]
enabled = false
collector_url = "localhost:4317"
service_name = "jobboard"

[mcp]
enabled = true
transport = "stdio"
`
