package config

import "time"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Recommend RecommendConfig `toml:"recommend"`
	Logging   LoggingConfig   `toml:"logging"`
	Tracking  TrackingConfig  `toml:"tracking"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	MCP       MCPConfig       `toml:"mcp"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                   string `toml:"host"`
	Port                   int    `toml:"port"`
	ReadTimeoutSeconds     int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown budget as a duration
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RecommendConfig tunes the similar-jobs engine
type RecommendConfig struct {
	CandidatePoolSize int     `toml:"candidate_pool_size"`
	DefaultLimit      int     `toml:"default_limit"`
	MaxLimit          int     `toml:"max_limit"`
	DescriptionLength int     `toml:"description_length"`
	SameCompanyBoost  float64 `toml:"same_company_boost"`
	Workers           int     `toml:"workers"`
	// StrictDiversity turns the per-company cap into a hard limit.
	StrictDiversity bool `toml:"strict_diversity"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	JSON  bool `toml:"json"`
	Debug bool `toml:"debug"`
}

// TrackingConfig controls the background expiry sweep
type TrackingConfig struct {
	// ExpirySweepMinutes is the sweep interval while serving; 0 disables it.
	ExpirySweepMinutes int `toml:"expiry_sweep_minutes"`
}

// SweepInterval returns the sweep interval as a duration
func (t TrackingConfig) SweepInterval() time.Duration {
	return time.Duration(t.ExpirySweepMinutes) * time.Minute
}

// TelemetryConfig contains tracing exporter settings
type TelemetryConfig struct {
	Enabled      bool   `toml:"enabled"`
	CollectorURL string `toml:"collector_url"`
	ServiceName  string `toml:"service_name"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                   "127.0.0.1",
			Port:                   8080,
			ReadTimeoutSeconds:     10,
			WriteTimeoutSeconds:    15,
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/jobboard/jobboard.db",
		},
		Recommend: DefaultRecommend(),
		Logging: LoggingConfig{
			JSON:  false,
			Debug: false,
		},
		Tracking: TrackingConfig{
			ExpirySweepMinutes: 60,
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			CollectorURL: "localhost:4317",
			ServiceName:  "jobboard",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

// DefaultRecommend returns the engine defaults on their own, for callers
// that build an engine without a config file.
func DefaultRecommend() RecommendConfig {
	return RecommendConfig{
		CandidatePoolSize: 200,
		DefaultLimit:      3,
		MaxLimit:          10,
		DescriptionLength: 150,
		SameCompanyBoost:  1.25,
		Workers:           4,
		StrictDiversity:   false,
	}
}
