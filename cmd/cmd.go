// Package cmd defines the command-line interface for codemind.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("owner", "", "Owner id to store the resulting profile under")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Profile store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of githubCmd to Viper
	githubCmd.Flags().Int("max-repos", contract.DefaultMaxRepos, "Maximum repositories to fetch per account")
	githubCmd.Flags().Int("max-files-per-repo", contract.DefaultMaxFilesPerRepo, "Maximum files to download per repository")
	githubCmd.Flags().Int("max-total-files", contract.DefaultMaxTotalFiles, "Maximum files to download across all repositories")
	githubCmd.Flags().Int("max-file-kb", contract.DefaultMaxFileBytes/1024, "Maximum file size in KB")
	githubCmd.Flags().String("github-token", "", "GitHub API token (raises rate limits)")
	if err := viper.BindPFlags(githubCmd.Flags()); err != nil {
		contract.LogFatal("Error binding github flags", err)
	}

	// Bind all flags of suggestCmd to Viper
	suggestCmd.Flags().String("gemini-api-key", "", "Gemini API key (falls back to GEMINI_API_KEY)")
	suggestCmd.Flags().String("gemini-model", contract.DefaultGeminiModel, "Gemini model to use for suggestions")
	if err := viper.BindPFlags(suggestCmd.Flags()); err != nil {
		contract.LogFatal("Error binding suggest flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().Int("port", contract.DefaultServerPort, "Port for the HTTP API server")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
