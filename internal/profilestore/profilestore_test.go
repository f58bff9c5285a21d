package profilestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// newSQLiteStore opens a store backed by a throwaway database file.
func newSQLiteStore(t *testing.T) contract.ProfileStore {
	t.Helper()
	store, err := New(schema.SQLiteBackend, filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleProfile() *schema.StyleProfile {
	return &schema.StyleProfile{
		NamingStyle:        schema.SnakeCase,
		NamingConfidence:   75.0,
		ErrorHandlingStyle: schema.TryExceptStyle,
		CodeQualityScore:   68,
		SkillLevel:         schema.Intermediate,
		PrimaryLanguage:    schema.LangPython,
		FilesAnalyzed:      2,
		TotalFunctions:     7,
	}
}

func TestSaveAndGetProfileRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.SaveProfile("alice", sampleProfile()))

	stored, err := store.GetProfile("alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Owner)
	assert.Equal(t, schema.SnakeCase, stored.Profile.NamingStyle)
	assert.Equal(t, 68, stored.Profile.CodeQualityScore)
	assert.Equal(t, 7, stored.Profile.TotalFunctions)
	assert.Equal(t, 0, stored.TotalInteractions)
}

func TestGetProfileUnknownOwner(t *testing.T) {
	store := newSQLiteStore(t)

	stored, err := store.GetProfile("nobody")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSaveProfileRequiresOwner(t *testing.T) {
	store := newSQLiteStore(t)
	assert.Error(t, store.SaveProfile("", sampleProfile()))
}

func TestReanalysisKeepsFeedbackCounters(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.SaveProfile("alice", sampleProfile()))
	_, err := store.RecordFeedback("alice", schema.FeedbackAccept)
	require.NoError(t, err)

	// A second analysis run replaces the profile but not the history.
	refreshed := sampleProfile()
	refreshed.CodeQualityScore = 90
	require.NoError(t, store.SaveProfile("alice", refreshed))

	stored, err := store.GetProfile("alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 90, stored.Profile.CodeQualityScore)
	assert.Equal(t, 1, stored.TotalInteractions)
	assert.Equal(t, 1, stored.SuggestionsAccepted)
}

func TestRecordFeedbackUpdatesCounters(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.SaveProfile("bob", sampleProfile()))

	updated, err := store.RecordFeedback("bob", schema.FeedbackAccept)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalInteractions)
	assert.Equal(t, 1, updated.SuggestionsAccepted)

	updated, err = store.RecordFeedback("bob", schema.FeedbackReject)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalInteractions)
	assert.Equal(t, 1, updated.SuggestionsRejected)
	assert.Equal(t, 2.0, updated.StyleConfidence)

	// The updated counters must survive a reload.
	stored, err := store.GetProfile("bob")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.TotalInteractions)
}

func TestRecordFeedbackWithoutProfile(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.RecordFeedback("nobody", schema.FeedbackAccept)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stored profile")
}

func TestGetStatusCountsProfiles(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.SaveProfile("alice", sampleProfile()))
	require.NoError(t, store.SaveProfile("bob", sampleProfile()))
	_, err := store.RecordFeedback("alice", schema.FeedbackAccept)
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 2, status.ProfileCount)
	assert.Equal(t, 1, status.TotalInteractions)
}

func TestNoneBackendIsNoOp(t *testing.T) {
	store, err := New(schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.SaveProfile("alice", sampleProfile()))
	stored, err := store.GetProfile("alice")
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = store.RecordFeedback("alice", schema.FeedbackAccept)
	assert.Error(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.NoError(t, store.Close())
}

func TestMigrateSQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	// Second run is a no-op, not an error.
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	// Roll all the way back.
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
}

func TestClearStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clear.db")
	store, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveProfile("alice", sampleProfile()))
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	// Clearing an already-clean store succeeds.
	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
}
