package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codemindhq/codemind/core"
	"github.com/codemindhq/codemind/internal/contract"
)

// analyzeCmd profiles source files under a local path.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Extract a style profile from local source files.",
	Long: `Walk a directory (or analyze a single file) and extract the author's
style DNA: naming convention, documentation habits, type-hint usage,
error-handling idiom, quality and consistency scores.

Examples:
  # Analyze the current directory
  codemind analyze

  # Analyze a project and persist the profile
  codemind analyze ~/src/myproject --owner alice

  # Export the profile as JSON
  codemind analyze --output json --output-file profile.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyzePath(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
