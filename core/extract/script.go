package extract

import (
	"regexp"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

var (
	jsFuncDeclRe  = regexp.MustCompile(`(?m)\bfunction\s+([A-Za-z_$][\w$]*)\s*\(`)
	jsArrowRe     = regexp.MustCompile(`(?m)\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*(:\s*[\w<>\[\]. |&]+\s*)?=>`)
	jsMethodRe    = regexp.MustCompile(`(?m)^\s*(?:async\s+)?([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*\{`)
	jsClassRe     = regexp.MustCompile(`(?m)\bclass\s+([A-Za-z_$][\w$]*)`)
	jsVarRe       = regexp.MustCompile(`(?m)\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=`)
	jsCatchRe     = regexp.MustCompile(`\bcatch\s*(\(\s*[\w$]*\s*(?::[^)]*)?\))?`)
	jsFinallyRe   = regexp.MustCompile(`\bfinally\b`)
	jsIfRe        = regexp.MustCompile(`(?m)\bif\s*\(`)
	jsDocBlockRe  = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	jsLineCmtRe   = regexp.MustCompile(`(?m)^\s*//`)
	jsLogInCatch  = regexp.MustCompile(`(?s)catch\s*(?:\([^)]*\))?\s*\{[^}]*\b(?:console\.(?:log|warn|error)|log(?:ger)?\.\w+)\s*\(`)
	tsReturnAnnRe = regexp.MustCompile(`\)\s*:\s*[\w<>\[\]. |&]+\s*\{`)
	tsTypedArrowRe = regexp.MustCompile(`[\(,]\s*[\w$]+\s*:\s*[\w<>\[\]. |&]+`)

	jsMethodKeywords = map[string]struct{}{
		"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {}, "function": {}, "return": {},
	}
)

// Script extracts stylistic observations from JavaScript or TypeScript
// source with regex heuristics. There is no degraded tier here because the
// heuristics never fail; the outcome is always full.
func Script(language schema.Language, content string) *schema.FileObservation {
	obs := schema.NewFileObservation(language, schema.ExtractionFull)
	obs.TotalLineCount = countLines(content)
	obs.CommentLineCount = len(jsLineCmtRe.FindAllString(content, -1))

	var names []string

	for _, m := range jsFuncDeclRe.FindAllStringSubmatch(content, -1) {
		obs.FunctionCount++
		names = append(names, m[1])
	}
	for _, m := range jsArrowRe.FindAllStringSubmatch(content, -1) {
		obs.FunctionCount++
		names = append(names, m[1])
		if language == schema.LangTypeScript && m[2] != "" {
			obs.TypedFunctionCount++
		}
	}
	for _, m := range jsMethodRe.FindAllStringSubmatch(content, -1) {
		if _, keyword := jsMethodKeywords[m[1]]; keyword {
			continue
		}
		obs.FunctionCount++
		names = append(names, m[1])
	}
	for _, m := range jsClassRe.FindAllStringSubmatch(content, -1) {
		obs.ClassCount++
		names = append(names, m[1])
	}
	for _, m := range jsVarRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}

	for _, block := range jsDocBlockRe.FindAllString(content, -1) {
		obs.DocumentedCount++
		obs.DocstringSamples = append(obs.DocstringSamples, NewDocstringSample(block))
	}
	if obs.DocumentedCount > obs.FunctionCount {
		obs.DocumentedCount = obs.FunctionCount
	}

	if language == schema.LangTypeScript {
		annotated := len(tsReturnAnnRe.FindAllString(content, -1)) + len(tsTypedArrowRe.FindAllString(content, -1))
		if annotated > obs.TypedFunctionCount {
			obs.TypedFunctionCount = annotated
		}
		if obs.TypedFunctionCount > obs.FunctionCount {
			obs.TypedFunctionCount = obs.FunctionCount
		}
	}

	for _, m := range jsCatchRe.FindAllStringSubmatch(content, -1) {
		sample := schema.ErrorHandlingSample{}
		clause := strings.TrimSpace(m[1])
		if clause == "" || clause == "()" {
			sample.HasBareCatch = true
		} else if strings.Contains(clause, ":") {
			sample.HasSpecificException = true
		} else {
			// catch (e) without a type is still the untyped catch-everything.
			sample.HasBareCatch = true
		}
		obs.ErrorHandlingSamples = append(obs.ErrorHandlingSamples, sample)
	}
	if len(obs.ErrorHandlingSamples) > 0 && jsFinallyRe.MatchString(content) {
		obs.ErrorHandlingSamples[0].HasFinally = true
	}
	if jsLogInCatch.MatchString(content) {
		obs.UsesLoggingInHandler = true
	}

	obs.IfCheckCount = len(jsIfRe.FindAllString(content, -1))

	if strings.HasPrefix(strings.TrimSpace(content), "/**") {
		obs.HasFileDoc = true
	}

	if len(names) > 0 {
		obs.NamingObserved = TallyIdentifiers(obs.NamingTally, names)
	}
	return obs
}
