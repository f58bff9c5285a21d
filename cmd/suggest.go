package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codemindhq/codemind/core"
	"github.com/codemindhq/codemind/internal/aiengine"
	"github.com/codemindhq/codemind/internal/contract"
)

// suggestCmd rewrites a snippet in the owner's stored style.
var suggestCmd = &cobra.Command{
	Use:   "suggest <snippet-file>",
	Short: "Get an AI suggestion that matches your stored coding style.",
	Long: `Read a code snippet and ask the suggestion engine to improve it in
the style of a stored profile. Without --owner (or with no stored profile)
the engine falls back to neutral conventions.

Requires a Gemini API key via --gemini-api-key or the GEMINI_API_KEY
environment variable.

Examples:
  # Suggest improvements in your own style
  codemind suggest snippet.py --owner alice

  # Machine-readable output
  codemind suggest snippet.py --owner alice --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cfg.TargetPath = args[0]
		engine, err := aiengine.NewEngine(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			contract.LogFatal("Cannot initialize suggestion engine", err)
		}
		if err := core.ExecuteSuggest(rootCtx, cfg, store, engine); err != nil {
			contract.LogFatal("Cannot run suggestion", err)
		}
	},
}
