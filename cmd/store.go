package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/internal/profilestore"
	"github.com/codemindhq/codemind/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on profile store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids path validation
// and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the profile store (persistence backend)",
	Long: `Manage the database that holds stored style profiles and their
learning counters.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored profiles
  migrate - Run schema migrations

Examples:
  # Check store status
  codemind store status

  # Wipe all profiles
  codemind store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the profile store.

Displays:
- Backend type and location
- Number of stored profiles
- Total recorded interactions

Examples:
  # Check store status
  codemind store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		s, err := profilestore.New(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open profile store", err)
		}
		defer func() { _ = s.Close() }()
		status, err := s.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		profilestore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored profiles",
	Long: `Delete all stored profiles from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the profiles table

Examples:
  # Clear the SQLite store (default)
  codemind store clear

  # Clear a MySQL store (set connection string via env variable)
  CODEMIND_STORE_BACKEND=mysql CODEMIND_STORE_DB_CONNECT="..." codemind store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := profilestore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations against the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations on the profile store",
	Long: `Apply (or roll back) embedded schema migrations against the
configured store backend.

By default migrates to the latest version. Use --target-version to pin a
specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  codemind store migrate

  # Roll back to the initial state
  codemind store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := profilestore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, target); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations applied successfully.")
	},
}
