// Package core has core logic for extraction, aggregation and scoring.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/internal/outwriter"
	"github.com/codemindhq/codemind/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteAnalyzePath runs the analysis over a local path and prints the
// resulting profile. It serves as the main entry point for the 'analyze' mode.
func ExecuteAnalyzePath(_ context.Context, cfg *contract.Config, store contract.ProfileStore) error {
	start := time.Now()
	files, err := CollectFiles(cfg.TargetPath, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		contract.LogWarn("nothing to analyze", fmt.Errorf("no recognized source files under %s", cfg.TargetPath))
	}
	profile := BuildProfile(files)
	if err := persistProfile(store, cfg.Owner, profile); err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintProfileResult(profile, cfg, duration)
}

// ExecuteAnalyzeGitHub fetches an account's repositories, analyzes the
// downloaded files and prints the resulting profile.
func ExecuteAnalyzeGitHub(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, store contract.ProfileStore) error {
	start := time.Now()
	progress := func(percent int, stage string) {
		if cfg.UseEmojis {
			fmt.Fprintf(os.Stderr, "⏳ %3d%% %s\n", percent, stage)
		} else {
			fmt.Fprintf(os.Stderr, "%3d%% %s\n", percent, stage)
		}
	}
	files, err := fetcher.FetchFiles(ctx, cfg.Owner, progress)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		contract.LogWarn("nothing to analyze", fmt.Errorf("no recognized source files for %s", cfg.Owner))
	}
	profile := BuildProfile(files)
	if err := persistProfile(store, cfg.Owner, profile); err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintProfileResult(profile, cfg, duration)
}

// ExecuteSuggest reads a code snippet and asks the suggestion engine to
// rewrite it in the owner's stored style.
func ExecuteSuggest(ctx context.Context, cfg *contract.Config, store contract.ProfileStore, suggester contract.Suggester) error {
	raw, err := os.ReadFile(cfg.TargetPath)
	if err != nil {
		return fmt.Errorf("cannot read snippet: %w", err)
	}

	profile, err := resolveProfile(store, cfg.Owner)
	if err != nil {
		return err
	}

	result, err := suggester.Suggest(ctx, string(raw), profile)
	if err != nil {
		return err
	}
	return outwriter.PrintSuggestionResult(result, cfg)
}

// ExecuteShowProfile prints the stored profile for an owner.
func ExecuteShowProfile(_ context.Context, cfg *contract.Config, store contract.ProfileStore) error {
	start := time.Now()
	if store == nil {
		return fmt.Errorf("profile lookup requires a store backend")
	}
	stored, err := store.GetProfile(cfg.Owner)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("no stored profile for %s", cfg.Owner)
	}
	duration := time.Since(start)
	return outwriter.PrintStoredProfile(stored, cfg, duration)
}

// ExecuteFeedback records one accept/reject interaction against the owner's
// stored profile and prints the updated counters.
func ExecuteFeedback(_ context.Context, cfg *contract.Config, store contract.ProfileStore, action schema.FeedbackAction) error {
	start := time.Now()
	if store == nil {
		return fmt.Errorf("feedback requires a store backend")
	}
	if _, ok := schema.ValidFeedbackActions[action]; !ok {
		return fmt.Errorf("invalid feedback action '%s'. must be accept, reject, ask_more", action)
	}
	stored, err := store.RecordFeedback(cfg.Owner, action)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintStoredProfile(stored, cfg, duration)
}

// persistProfile saves the profile when a store and owner are configured.
// Analysis output never depends on persistence succeeding.
func persistProfile(store contract.ProfileStore, owner string, profile *schema.StyleProfile) error {
	if store == nil || owner == "" {
		return nil
	}
	if err := store.SaveProfile(owner, profile); err != nil {
		contract.LogWarn("profile not saved", err)
	}
	return nil
}

// resolveProfile loads the stored profile for an owner, falling back to a
// neutral default when no store is configured or nothing is stored yet.
func resolveProfile(store contract.ProfileStore, owner string) (*schema.StyleProfile, error) {
	if store != nil && owner != "" {
		stored, err := store.GetProfile(owner)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return &stored.Profile, nil
		}
	}
	return BuildProfile(nil), nil
}
