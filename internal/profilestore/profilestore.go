// Package profilestore persists style profiles and their feedback counters
// across sqlite, mysql and postgresql backends.
package profilestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver (CGO-free)

	"github.com/codemindhq/codemind/internal/aiengine"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// profilesTable holds one row per analyzed owner.
const profilesTable = "codemind_profiles"

// StoreImpl implements the ProfileStore interface over database/sql.
type StoreImpl struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.ProfileStore = &StoreImpl{} // Compile-time check

// New opens a profile store for the given backend. NoneBackend yields a
// functional no-op store so callers never branch on persistence being off.
func New(backend schema.DatabaseBackend, connStr string) (contract.ProfileStore, error) {
	var db *sql.DB
	var err error
	var location string

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		location = dbPath
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		location = "mysql server"
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		location = "postgresql server"
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		return &StoreImpl{db: nil, backend: backend, location: "disabled"}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createProfilesTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create profiles table: %w", err)
	}

	return &StoreImpl{db: db, backend: backend, location: location}, nil
}

// createProfilesTable creates the profiles table when absent. The embedded
// migrations manage later schema changes; this keeps first-run ergonomics.
func createProfilesTable(db *sql.DB, backend schema.DatabaseBackend) error {
	ownerType := "VARCHAR(255)"
	if backend == schema.SQLiteBackend {
		ownerType = "TEXT"
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			owner %s PRIMARY KEY,
			profile_json TEXT NOT NULL,
			total_interactions INTEGER NOT NULL DEFAULT 0,
			suggestions_accepted INTEGER NOT NULL DEFAULT 0,
			suggestions_rejected INTEGER NOT NULL DEFAULT 0,
			style_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at VARCHAR(64)
		);
	`, profilesTable, ownerType)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", profilesTable, err)
	}
	return nil
}

// SaveProfile inserts or replaces the profile stored for an owner. A
// re-analysis refreshes the profile but keeps the feedback counters, since
// those track the owner's interaction history, not one analysis run.
func (s *StoreImpl) SaveProfile(owner string, profile *schema.StyleProfile) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	if owner == "" {
		return fmt.Errorf("owner is required to save a profile")
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (owner, profile_json, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (owner) DO UPDATE SET profile_json = excluded.profile_json, updated_at = excluded.updated_at
		`, profilesTable)
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (owner, profile_json, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE profile_json = VALUES(profile_json), updated_at = VALUES(updated_at)
		`, profilesTable)
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT INTO %s (owner, profile_json, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (owner) DO UPDATE SET profile_json = excluded.profile_json, updated_at = excluded.updated_at
		`, profilesTable)
	}

	if _, err := s.db.Exec(query, owner, string(profileJSON), now); err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", owner, err)
	}
	return nil
}

// GetProfile returns the stored profile for an owner, or nil when the owner
// has never been analyzed.
func (s *StoreImpl) GetProfile(owner string) (*schema.StoredProfile, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT profile_json, total_interactions, suggestions_accepted, suggestions_rejected, style_confidence FROM %s WHERE owner = $1`, profilesTable)
	default:
		query = fmt.Sprintf(`SELECT profile_json, total_interactions, suggestions_accepted, suggestions_rejected, style_confidence FROM %s WHERE owner = ?`, profilesTable)
	}

	stored := schema.StoredProfile{Owner: owner}
	var profileJSON string
	err := s.db.QueryRow(query, owner).Scan(&profileJSON, &stored.TotalInteractions,
		&stored.SuggestionsAccepted, &stored.SuggestionsRejected, &stored.StyleConfidence)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %s: %w", owner, err)
	}

	if err := json.Unmarshal([]byte(profileJSON), &stored.Profile); err != nil {
		return nil, fmt.Errorf("stored profile for %s is corrupt: %w", owner, err)
	}
	return &stored, nil
}

// RecordFeedback applies one interaction to the owner's stored record and
// writes back the updated counters. The profile value itself is replaced,
// never mutated, matching the immutability of synthesized profiles.
func (s *StoreImpl) RecordFeedback(owner string, action schema.FeedbackAction) (*schema.StoredProfile, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, fmt.Errorf("feedback requires a store backend")
	}

	stored, err := s.GetProfile(owner)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("no stored profile for %s; run an analysis first", owner)
	}

	updated := aiengine.ApplyFeedback(stored, action)

	profileJSON, err := json.Marshal(&updated.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			UPDATE %s SET profile_json = $1, total_interactions = $2, suggestions_accepted = $3,
			suggestions_rejected = $4, style_confidence = $5, updated_at = $6 WHERE owner = $7
		`, profilesTable)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			UPDATE %s SET profile_json = ?, total_interactions = ?, suggestions_accepted = ?,
			suggestions_rejected = ?, style_confidence = ?, updated_at = ? WHERE owner = ?
		`, profilesTable)
	}

	if _, err := s.db.Exec(query, string(profileJSON), updated.TotalInteractions,
		updated.SuggestionsAccepted, updated.SuggestionsRejected,
		updated.StyleConfidence, now, owner); err != nil {
		return nil, fmt.Errorf("failed to record feedback for %s: %w", owner, err)
	}
	return updated, nil
}

// GetStatus returns status information about the profile store.
func (s *StoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  s.backend,
		Location: s.location,
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(total_interactions), 0) FROM %s", profilesTable)
	row := s.db.QueryRow(countQuery)
	if err := row.Scan(&status.ProfileCount, &status.TotalInteractions); err != nil {
		return status, fmt.Errorf("failed to get profile counts: %w", err)
	}
	return status, nil
}

// Close closes the underlying connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
