package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// PrintSuggestionResult outputs a suggestion, dispatching on the configured
// format. CSV and Parquet make no sense for a code snippet, so anything that
// is not JSON renders as text.
func PrintSuggestionResult(result *schema.SuggestionResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeSuggestionText(result, cfg, w)
	}, "Wrote suggestion")
}

func writeSuggestionText(result *schema.SuggestionResult, cfg *contract.Config, writer io.Writer) error {
	if !result.HasSuggestion {
		_, err := fmt.Fprintln(writer, "No suggestion: the code already matches your style.")
		return err
	}
	if cfg.UseEmojis {
		if _, err := fmt.Fprintln(writer, "💡 Suggested rewrite"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(writer, result.ImprovedCode); err != nil {
		return err
	}
	if result.Explanation != "" {
		if _, err := fmt.Fprintf(writer, "\n%s\n", result.Explanation); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "Confidence: %.0f%%\n", result.Confidence*100)
	return err
}

// PrintStoredProfile outputs a stored profile plus its interaction counters.
func PrintStoredProfile(stored *schema.StoredProfile, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stored)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Owner: %s (interactions: %d, accepted: %d, rejected: %d, confidence: %.1f%%)\n",
			stored.Owner, stored.TotalInteractions, stored.SuggestionsAccepted,
			stored.SuggestionsRejected, stored.StyleConfidence); err != nil {
			return err
		}
		return writeProfileTable(&stored.Profile, cfg, duration, w)
	}, "Wrote profile")
}
