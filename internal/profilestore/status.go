package profilestore

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/codemindhq/codemind/schema"
)

// PrintStoreStatus prints profile store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Location: %s\n", status.Location)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Stored Profiles: %d\n", status.ProfileCount)
	fmt.Printf("Total Interactions: %d\n", status.TotalInteractions)
}

// ClearStore removes all stored profiles.
//
// For SQLite the database file is deleted; for MySQL/PostgreSQL the profiles
// table is dropped.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.NoneBackend:
		return nil

	case schema.SQLiteBackend:
		path := connStr
		if path == "" {
			path = dbFilePath
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database: %w", err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName := "mysql"
		if backend == schema.PostgreSQLBackend {
			driverName = "pgx"
		}
		db, err := sql.Open(driverName, connStr)
		if err != nil {
			return fmt.Errorf("failed to open %s database: %w", backend, err)
		}
		defer func() { _ = db.Close() }()
		if _, err := db.Exec("DROP TABLE IF EXISTS " + profilesTable); err != nil {
			return fmt.Errorf("failed to drop profiles table: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}
