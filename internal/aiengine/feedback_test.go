package aiengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codemindhq/codemind/schema"
)

func storedFixture() *schema.StoredProfile {
	return &schema.StoredProfile{
		Owner: "alice",
		Profile: schema.StyleProfile{
			SkillLevel:    schema.Beginner,
			FilesAnalyzed: 3,
		},
	}
}

func TestApplyFeedbackCounters(t *testing.T) {
	stored := storedFixture()

	updated := ApplyFeedback(stored, schema.FeedbackAccept)
	assert.Equal(t, 1, updated.TotalInteractions)
	assert.Equal(t, 1, updated.SuggestionsAccepted)
	assert.Equal(t, 0, updated.SuggestionsRejected)
	assert.Equal(t, 1.0, updated.StyleConfidence)

	updated = ApplyFeedback(updated, schema.FeedbackReject)
	assert.Equal(t, 2, updated.TotalInteractions)
	assert.Equal(t, 1, updated.SuggestionsRejected)

	updated = ApplyFeedback(updated, schema.FeedbackAskMore)
	assert.Equal(t, 3, updated.TotalInteractions)
	assert.Equal(t, 1, updated.SuggestionsAccepted)
	assert.Equal(t, 1, updated.SuggestionsRejected)
}

func TestApplyFeedbackDoesNotMutateInput(t *testing.T) {
	stored := storedFixture()
	_ = ApplyFeedback(stored, schema.FeedbackAccept)

	assert.Equal(t, 0, stored.TotalInteractions)
	assert.Equal(t, schema.Beginner, stored.Profile.SkillLevel)
}

func TestApplyFeedbackConfidenceCaps(t *testing.T) {
	stored := storedFixture()
	stored.TotalInteractions = 150

	updated := ApplyFeedback(stored, schema.FeedbackAccept)
	assert.Equal(t, 100.0, updated.StyleConfidence)
}

func TestPromoteSkill(t *testing.T) {
	tests := []struct {
		name         string
		current      schema.SkillLevel
		interactions int
		accepted     int
		want         schema.SkillLevel
	}{
		{"too few interactions", schema.Beginner, 10, 10, schema.Beginner},
		{"fifty interactions promote beginner", schema.Beginner, 50, 0, schema.Intermediate},
		{"fifty interactions keep intermediate", schema.Intermediate, 50, 0, schema.Intermediate},
		{"high accept rate promotes to advanced", schema.Intermediate, 100, 80, schema.Advanced},
		{"moderate accept rate promotes beginner", schema.Beginner, 100, 50, schema.Intermediate},
		{"low accept rate keeps current", schema.Intermediate, 100, 10, schema.Intermediate},
		{"advanced never demoted", schema.Advanced, 100, 0, schema.Advanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := promoteSkill(tt.current, tt.interactions, tt.accepted)
			assert.Equal(t, tt.want, got)
		})
	}
}
