package aiengine

import (
	"github.com/codemindhq/codemind/schema"
)

// Interaction thresholds for the feedback loop. Confidence grows linearly
// with interactions and caps at 100; skill promotion needs a track record,
// not a single accepted suggestion.
const (
	confidenceCapInteractions = 100
	promoteMinInteractions    = 50
	rateMinInteractions       = 100
	advancedAcceptRate        = 0.7
	intermediateAcceptRate    = 0.4
)

// ApplyFeedback folds one accept/reject/ask-more interaction into a stored
// profile and returns the updated record as a new value. The input is never
// mutated; synthesized profiles stay immutable.
func ApplyFeedback(stored *schema.StoredProfile, action schema.FeedbackAction) *schema.StoredProfile {
	updated := *stored

	updated.TotalInteractions++
	switch action {
	case schema.FeedbackAccept:
		updated.SuggestionsAccepted++
	case schema.FeedbackReject:
		updated.SuggestionsRejected++
	case schema.FeedbackAskMore:
		// Curiosity counts toward confidence but is neither endorsement
		// nor rejection.
	}

	updated.StyleConfidence = float64(updated.TotalInteractions)
	if updated.StyleConfidence > confidenceCapInteractions {
		updated.StyleConfidence = confidenceCapInteractions
	}

	updated.Profile.SkillLevel = promoteSkill(updated.Profile.SkillLevel,
		updated.TotalInteractions, updated.SuggestionsAccepted)

	return &updated
}

// promoteSkill raises the skill tier once enough interactions accumulate.
// Feedback only ever promotes; the analysis pipeline owns demotions.
func promoteSkill(current schema.SkillLevel, interactions, accepted int) schema.SkillLevel {
	if interactions >= rateMinInteractions {
		rate := float64(accepted) / float64(interactions)
		if rate > advancedAcceptRate {
			return schema.Advanced
		}
		if rate > intermediateAcceptRate && current == schema.Beginner {
			return schema.Intermediate
		}
		return current
	}
	if interactions >= promoteMinInteractions && current == schema.Beginner {
		return schema.Intermediate
	}
	return current
}
