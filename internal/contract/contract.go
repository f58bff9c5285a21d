// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/codemindhq/codemind/schema"
)

// RepoFetcher defines the operations needed to pull source files from a
// remote hosting service. This allows the analysis entry points to be tested
// without network access.
type RepoFetcher interface {
	// ListRepos returns repository names owned by the given account,
	// most recently pushed first, bounded by the fetcher's repo cap.
	ListRepos(ctx context.Context, owner string) ([]string, error)

	// FetchFiles downloads recognized source files for one account across
	// its repositories, honoring the fetcher's file and size caps.
	FetchFiles(ctx context.Context, owner string, progress ProgressFunc) ([]schema.SourceFile, error)
}

// ProgressFunc receives fetch progress as a percentage and a short stage
// description. Implementations must tolerate nil callbacks.
type ProgressFunc func(percent int, stage string)

// ProfileStore defines the persistence operations for style profiles and
// their feedback counters.
type ProfileStore interface {
	// SaveProfile inserts or replaces the profile stored for an owner.
	SaveProfile(owner string, profile *schema.StyleProfile) error

	// GetProfile returns the stored profile for an owner, or nil when the
	// owner has never been analyzed.
	GetProfile(owner string) (*schema.StoredProfile, error)

	// RecordFeedback applies one accept/reject interaction to the owner's
	// counters and returns the updated record.
	RecordFeedback(owner string, action schema.FeedbackAction) (*schema.StoredProfile, error)

	// GetStatus returns status information about the profile store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Suggester defines the interface to the AI suggestion engine.
type Suggester interface {
	// Suggest rewrites a code snippet in the author's established style.
	Suggest(ctx context.Context, code string, profile *schema.StyleProfile) (*schema.SuggestionResult, error)
}
