// Package aiengine produces style-matched code suggestions through the
// Gemini API and adapts stored profiles from user feedback.
package aiengine

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// Engine wraps the genai client. It holds no per-request state; a single
// instance serves concurrent callers.
type Engine struct {
	cli   *genai.Client
	model string
}

var _ contract.Suggester = &Engine{} // Compile-time check

// NewEngine connects to the Gemini API. The key falls back to the
// GEMINI_API_KEY environment variable when empty, which the client reads on
// its own.
func NewEngine(ctx context.Context, apiKey, model string) (*Engine, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = contract.DefaultGeminiModel
	}
	return &Engine{cli: cli, model: model}, nil
}

// Suggest asks the model to rewrite a snippet in the profile's style. Any
// API or parse failure yields the no-suggestion value rather than an error:
// a flaky model response must not turn into a failed request for the user.
func (e *Engine) Suggest(ctx context.Context, code string, profile *schema.StyleProfile) (*schema.SuggestionResult, error) {
	prompt := buildSuggestionPrompt(code, profile)

	resp, err := e.cli.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		contract.LogWarn("suggestion request failed", err)
		return noSuggestion(), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return noSuggestion(), nil
	}

	return parseSuggestion(resp.Candidates[0].Content.Parts[0].Text), nil
}

// fenceRe strips the markdown code fences some model responses still wrap
// around JSON despite the MIME-type hint.
var fenceRe = regexp.MustCompile("```(?:json)?\\s*")

// parseSuggestion decodes the model's JSON reply, tolerating fences and
// surrounding whitespace. Undecodable replies become the no-suggestion value.
func parseSuggestion(text string) *schema.SuggestionResult {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	var result schema.SuggestionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return noSuggestion()
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return &result
}

// noSuggestion is the well-formed "nothing to offer" value.
func noSuggestion() *schema.SuggestionResult {
	return &schema.SuggestionResult{
		HasSuggestion: false,
		Explanation:   "Unable to generate suggestion",
		Confidence:    0,
	}
}
