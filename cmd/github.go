package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codemindhq/codemind/core"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/internal/githubfetch"
)

// githubCmd profiles a GitHub account's public repositories.
var githubCmd = &cobra.Command{
	Use:   "github <username>",
	Short: "Extract a style profile from a GitHub account's repositories.",
	Long: `Fetch a user's public non-fork repositories, download their source
files (bounded by the repo/file caps), and extract a style profile from the
combined batch. The profile is stored under the GitHub username.

Examples:
  # Profile a GitHub account
  codemind github torvalds

  # Use a token to raise API rate limits
  codemind github alice --github-token $GITHUB_TOKEN

  # Fetch more files per repository
  codemind github alice --max-files-per-repo 50`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cfg.Owner = args[0]
		fetcher := githubfetch.New(cfg)
		if err := core.ExecuteAnalyzeGitHub(rootCtx, cfg, fetcher, store); err != nil {
			contract.LogFatal("Cannot run GitHub analysis", err)
		}
	},
}
