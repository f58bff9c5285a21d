package aiengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/schema"
)

func profileFixture() *schema.StyleProfile {
	return &schema.StyleProfile{
		NamingStyle:             schema.CamelCase,
		NamingConfidence:        81.0,
		DocumentationPercentage: 66.7,
		DocstringStyle:          schema.GoogleDoc,
		TypeHintsPercentage:     75.0,
		ErrorHandlingStyle:      schema.TryExceptStyle,
		UsesLoggingInHandlers:   true,
		CodeQualityScore:        72,
		SkillLevel:              schema.Intermediate,
		PrimaryLanguage:         schema.LangPython,
		FilesAnalyzed:           4,
	}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want schema.SuggestionResult
	}{
		{
			name: "plain json",
			text: `{"has_suggestion": true, "improved_code": "x = 1", "explanation": "shorter", "confidence": 0.9}`,
			want: schema.SuggestionResult{HasSuggestion: true, ImprovedCode: "x = 1", Explanation: "shorter", Confidence: 0.9},
		},
		{
			name: "fenced json",
			text: "```json\n{\"has_suggestion\": true, \"improved_code\": \"y\", \"explanation\": \"ok\", \"confidence\": 0.5}\n```",
			want: schema.SuggestionResult{HasSuggestion: true, ImprovedCode: "y", Explanation: "ok", Confidence: 0.5},
		},
		{
			name: "confidence clamped",
			text: `{"has_suggestion": true, "confidence": 1.7}`,
			want: schema.SuggestionResult{HasSuggestion: true, Confidence: 1},
		},
		{
			name: "garbage becomes no suggestion",
			text: "I cannot help with that.",
			want: schema.SuggestionResult{HasSuggestion: false, Explanation: "Unable to generate suggestion"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSuggestion(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestBuildStyleContext(t *testing.T) {
	ctx := BuildStyleContext(profileFixture())

	assert.Contains(t, ctx, "camelCase")
	assert.Contains(t, ctx, "81% confidence")
	assert.Contains(t, ctx, "google dialect")
	assert.Contains(t, ctx, "try_except style")
	assert.Contains(t, ctx, "Logs inside error handlers")
	assert.Contains(t, ctx, "72/100")
	assert.Contains(t, ctx, "Python")
	// High type-hint usage must not trigger the "do not add them" rule.
	assert.NotContains(t, ctx, "do not add them")
}

func TestBuildStyleContextEmptyProfile(t *testing.T) {
	assert.Contains(t, BuildStyleContext(nil), "No style profile available")
	assert.Contains(t, BuildStyleContext(&schema.StyleProfile{}), "No style profile available")
}

func TestBuildSuggestionPromptIsDeterministic(t *testing.T) {
	profile := profileFixture()
	first := buildSuggestionPrompt("def f(): pass", profile)
	second := buildSuggestionPrompt("def f(): pass", profile)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "def f(): pass")
	assert.Contains(t, first, "Include type hints")
	assert.Contains(t, first, "Respond with JSON only")
}

func TestBuildSuggestionPromptLowTypeHints(t *testing.T) {
	profile := profileFixture()
	profile.TypeHintsPercentage = 10

	prompt := buildSuggestionPrompt("x = 1", profile)
	assert.Contains(t, prompt, "DO NOT add type hints")
}
