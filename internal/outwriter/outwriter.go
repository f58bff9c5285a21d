// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProfile prints a style profile using the configured output format.
func (ow *OutWriter) WriteProfile(profile *schema.StyleProfile, cfg *contract.Config, duration time.Duration) error {
	return PrintProfileResult(profile, cfg, duration)
}

// WriteSuggestion prints a suggestion result using the configured output format.
func (ow *OutWriter) WriteSuggestion(result *schema.SuggestionResult, cfg *contract.Config) error {
	return PrintSuggestionResult(result, cfg)
}

// WriteStoredProfile prints a stored profile with its feedback counters.
func (ow *OutWriter) WriteStoredProfile(stored *schema.StoredProfile, cfg *contract.Config, duration time.Duration) error {
	return PrintStoredProfile(stored, cfg, duration)
}
