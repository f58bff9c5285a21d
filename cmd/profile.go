package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codemindhq/codemind/core"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// profileCmd shows the stored profile for an owner.
var profileCmd = &cobra.Command{
	Use:   "profile <owner>",
	Short: "Show the stored style profile for an owner.",
	Long: `Load and display the style profile stored under an owner id,
including the learning counters accumulated from feedback.

Examples:
  # Show alice's stored profile
  codemind profile alice

  # Export it as JSON
  codemind profile alice --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cfg.Owner = args[0]
		if err := core.ExecuteShowProfile(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot show profile", err)
		}
	},
}

// feedbackCmd records one accept/reject interaction for an owner.
var feedbackCmd = &cobra.Command{
	Use:   "feedback <owner> <action>",
	Short: "Record feedback on a suggestion (accept, reject, ask_more).",
	Long: `Record one interaction against an owner's stored profile. Feedback
drives the learning loop: confidence grows with interaction count and the
skill level is promoted once enough suggestions have been accepted.

Actions:
  accept   - The suggestion was applied
  reject   - The suggestion was dismissed
  ask_more - The user asked for clarification

Examples:
  # Accept the last suggestion
  codemind feedback alice accept

  # Reject it instead
  codemind feedback alice reject`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cfg.Owner = args[0]
		action := schema.FeedbackAction(args[1])
		if err := core.ExecuteFeedback(rootCtx, cfg, store, action); err != nil {
			contract.LogFatal("Cannot record feedback", err)
		}
	},
}
