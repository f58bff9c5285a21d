package aiengine

import (
	"fmt"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// BuildStyleContext renders a profile as the natural-language style block
// that anchors every suggestion prompt. Deterministic given the same profile
// so prompt output is testable.
func BuildStyleContext(profile *schema.StyleProfile) string {
	if profile == nil || profile.FilesAnalyzed == 0 {
		return "No style profile available. Use clean, conventional style for the language."
	}

	var b strings.Builder
	b.WriteString("USER'S CODING STYLE (extracted from their code):\n")
	fmt.Fprintf(&b, "- Naming convention: %s (%.0f%% confidence)\n", profile.NamingStyle, profile.NamingConfidence)
	fmt.Fprintf(&b, "- Documentation: %.0f%% of functions have doc comments (%s dialect)\n",
		profile.DocumentationPercentage, profile.DocstringStyle)
	fmt.Fprintf(&b, "- Type hints: %.0f%% usage\n", profile.TypeHintsPercentage)
	fmt.Fprintf(&b, "- Error handling: %s style\n", profile.ErrorHandlingStyle)
	if profile.UsesLoggingInHandlers {
		b.WriteString("- Logs inside error handlers\n")
	}
	fmt.Fprintf(&b, "- Code quality: %d/100, skill level: %s\n", profile.CodeQualityScore, profile.SkillLevel)
	fmt.Fprintf(&b, "- Primary language: %s\n", profile.PrimaryLanguage)

	fmt.Fprintf(&b, "\nIMPORTANT: Match their style EXACTLY. If they use %s, use %s.\n",
		profile.NamingStyle, profile.NamingStyle)
	if profile.TypeHintsPercentage <= 50 {
		fmt.Fprintf(&b, "They rarely use type hints (%.0f%%), so do not add them.\n", profile.TypeHintsPercentage)
	}
	return b.String()
}

// buildSuggestionPrompt assembles the full JSON-only suggestion prompt.
func buildSuggestionPrompt(code string, profile *schema.StyleProfile) string {
	styleContext := BuildStyleContext(profile)

	naming := schema.SnakeCase
	hintRule := "DO NOT add type hints"
	handling := schema.BasicStyle
	docPct := 0.0
	if profile != nil {
		naming = profile.NamingStyle
		handling = profile.ErrorHandlingStyle
		docPct = profile.DocumentationPercentage
		if profile.TypeHintsPercentage > 50 {
			hintRule = "Include type hints"
		}
	}

	return fmt.Sprintf(`You are CodeMind, an AI coding assistant that suggests improvements matching the user's coding style.

%s

USER'S CODE:
`+"```"+`
%s
`+"```"+`

Analyze this code and suggest an improvement that MATCHES their style patterns.

Respond with JSON only (no markdown):
{
  "has_suggestion": true or false,
  "improved_code": "improved code matching their style, or empty",
  "explanation": "why this is better (2-3 sentences)",
  "confidence": 0.0 to 1.0
}

CRITICAL RULES:
1. Use %s naming EXACTLY
2. Match their documentation style (%.0f%% usage)
3. %s
4. Match their error handling style (%s)
5. Code should feel like THEY wrote it, just improved
6. If the code is already good, set has_suggestion to false
`, styleContext, code, naming, docPct, hintRule, handling)
}
