package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// Default values for configuration.
const (
	DefaultMaxRepos        = 20
	DefaultMaxFilesPerRepo = 30
	DefaultMaxTotalFiles   = 50
	DefaultMaxFileBytes    = 100 * 1024
	DefaultServerPort      = 8080
	DefaultGeminiModel     = "gemini-2.0-flash"
)

// Config holds the runtime configuration for analysis and serving.
// This struct remains the "final, validated" config.
type Config struct {
	TargetPath string
	Owner      string

	Output     schema.OutputMode
	OutputFile string

	Excludes []string

	MaxRepos        int
	MaxFilesPerRepo int
	MaxTotalFiles   int
	MaxFileBytes    int

	GitHubToken string
	GitHubAPI   string // Override for tests; empty means the public API

	GeminiAPIKey string
	GeminiModel  string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	ServerPort int

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config that callers may mutate per request
// without affecting the shared base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Excludes = append([]string(nil), c.Excludes...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TargetPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Owner          string `mapstructure:"owner"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Exclude        string `mapstructure:"exclude"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from githubCmd.Flags() ---
	MaxRepos        int    `mapstructure:"max-repos"`
	MaxFilesPerRepo int    `mapstructure:"max-files-per-repo"`
	MaxTotalFiles   int    `mapstructure:"max-total-files"`
	MaxFileKB       int    `mapstructure:"max-file-kb"`
	GitHubToken     string `mapstructure:"github-token"`

	// --- Fields from suggestCmd.Flags() ---
	GeminiAPIKey string `mapstructure:"gemini-api-key"`
	GeminiModel  string `mapstructure:"gemini-model"`

	// --- Fields from serveCmd.Flags() ---
	Port int `mapstructure:"port"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateLimits(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	cfg.TargetPath = input.TargetPathStr
	cfg.Owner = strings.TrimSpace(input.Owner)
	cfg.GitHubToken = input.GitHubToken
	cfg.GeminiAPIKey = input.GeminiAPIKey
	cfg.GeminiModel = input.GeminiModel
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	return nil
}

// validateSimpleInputs processes and validates all non-limit fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// Defaults keep generated, vendored and binary-ish files out of the walk.
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".mp4", ".mov", ".webm", ".mp3", ".ogg", ".pdf", ".webp",
		".DS_Store", ".gitignore",
		"node_modules/", "vendor/", "dist/", "build/", "out/", "target/", "bin/", ".git/",
	}
	cfg.Excludes = defaults

	if input.Exclude != "" {
		for part := range strings.SplitSeq(input.Exclude, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// validateLimits checks the fetch caps and server port.
func validateLimits(cfg *Config, input *ConfigRawInput) error {
	cfg.MaxRepos = input.MaxRepos
	if cfg.MaxRepos <= 0 || cfg.MaxRepos > 100 {
		return fmt.Errorf("max-repos must be between 1 and 100 (received %d)", input.MaxRepos)
	}
	cfg.MaxFilesPerRepo = input.MaxFilesPerRepo
	if cfg.MaxFilesPerRepo <= 0 {
		return fmt.Errorf("max-files-per-repo must be greater than 0 (received %d)", input.MaxFilesPerRepo)
	}
	cfg.MaxTotalFiles = input.MaxTotalFiles
	if cfg.MaxTotalFiles <= 0 {
		return fmt.Errorf("max-total-files must be greater than 0 (received %d)", input.MaxTotalFiles)
	}
	if input.MaxFileKB <= 0 {
		return fmt.Errorf("max-file-kb must be greater than 0 (received %d)", input.MaxFileKB)
	}
	cfg.MaxFileBytes = input.MaxFileKB * 1024

	cfg.ServerPort = input.Port
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return fmt.Errorf("port must be between 1 and 65535 (received %d)", input.Port)
	}
	return nil
}

// validateBackendConfig validates the profile store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// GetStoreDBFilePath returns the path to the SQLite DB file for profile storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".codemind_profiles.db"
	}
	return filepath.Join(homeDir, ".codemind_profiles.db")
}
