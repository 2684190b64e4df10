package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'jobboard config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML over the defaults, expands paths and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file, falling back to defaults when it does not exist
func LoadOrDefault(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.expandPaths(); err != nil {
			return nil, fmt.Errorf("failed to expand paths: %w", err)
		}
		return cfg, nil
	}

	return Load(expandedPath)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, errors.New("server.port must be between 1 and 65535"))
	}
	if c.Server.ReadTimeoutSeconds < 1 {
		errs = append(errs, errors.New("server.read_timeout_seconds must be at least 1"))
	}
	if c.Server.WriteTimeoutSeconds < 1 {
		errs = append(errs, errors.New("server.write_timeout_seconds must be at least 1"))
	}
	if c.Server.ShutdownTimeoutSeconds < 1 {
		errs = append(errs, errors.New("server.shutdown_timeout_seconds must be at least 1"))
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if err := c.Recommend.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Tracking.ExpirySweepMinutes < 0 {
		errs = append(errs, errors.New("tracking.expiry_sweep_minutes must not be negative"))
	}

	// Telemetry validation
	if c.Telemetry.Enabled && c.Telemetry.CollectorURL == "" {
		errs = append(errs, errors.New("telemetry.collector_url is required when telemetry is enabled"))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks the engine settings on their own
func (r RecommendConfig) Validate() error {
	var errs []error

	if r.CandidatePoolSize < 1 || r.CandidatePoolSize > 1000 {
		errs = append(errs, errors.New("recommend.candidate_pool_size must be between 1 and 1000"))
	}
	if r.MaxLimit < 1 {
		errs = append(errs, errors.New("recommend.max_limit must be at least 1"))
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		errs = append(errs, fmt.Errorf("recommend.default_limit must be between 1 and %d", r.MaxLimit))
	}
	if r.DescriptionLength < 1 {
		errs = append(errs, errors.New("recommend.description_length must be at least 1"))
	}
	if r.SameCompanyBoost < 1 {
		errs = append(errs, errors.New("recommend.same_company_boost must be at least 1"))
	}
	if r.Workers < 0 {
		errs = append(errs, errors.New("recommend.workers must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ListenAddr returns the host:port the HTTP server binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
