package extract

import (
	"regexp"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

var (
	javaMethodRe  = regexp.MustCompile(`(?m)^\s*(?:public|protected|private)?\s*(?:static\s+)?(?:final\s+)?[\w<>\[\], ]+\s+([a-zA-Z_]\w*)\s*\([^)]*\)\s*(?:throws\s+[\w, ]+)?\s*\{`)
	javaClassRe   = regexp.MustCompile(`(?m)\b(?:class|interface|enum|record)\s+([A-Za-z_]\w*)`)
	javaFieldRe   = regexp.MustCompile(`(?m)^\s*(?:public|protected|private)\s+(?:static\s+)?(?:final\s+)?[\w<>\[\], ]+\s+([a-zA-Z_]\w*)\s*[=;]`)
	javaCatchRe   = regexp.MustCompile(`\bcatch\s*\(\s*([\w.|\s]+)\s+\w+\s*\)`)
	javaFinallyRe = regexp.MustCompile(`\bfinally\b`)
	javaIfRe      = regexp.MustCompile(`(?m)\bif\s*\(`)
	javadocRe     = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	javaLineCmtRe = regexp.MustCompile(`(?m)^\s*//`)
	javaLogCatch  = regexp.MustCompile(`(?s)catch\s*\([^)]*\)\s*\{[^}]*\b(?:log(?:ger)?\.\w+|System\.(?:out|err)\.print)`)

	javaMethodKeywords = map[string]struct{}{
		"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {}, "return": {}, "new": {},
	}
)

// Java extracts stylistic observations from Java source with regex
// heuristics. Java is statically typed, so every detected method counts as
// typed.
func Java(content string) *schema.FileObservation {
	obs := schema.NewFileObservation(schema.LangJava, schema.ExtractionFull)
	obs.TotalLineCount = countLines(content)
	obs.CommentLineCount = len(javaLineCmtRe.FindAllString(content, -1))

	var names []string

	for _, m := range javaMethodRe.FindAllStringSubmatch(content, -1) {
		if _, keyword := javaMethodKeywords[m[1]]; keyword {
			continue
		}
		obs.FunctionCount++
		obs.TypedFunctionCount++
		names = append(names, m[1])
	}
	for _, m := range javaClassRe.FindAllStringSubmatch(content, -1) {
		obs.ClassCount++
		names = append(names, m[1])
	}
	for _, m := range javaFieldRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}

	for _, block := range javadocRe.FindAllString(content, -1) {
		obs.DocumentedCount++
		obs.DocstringSamples = append(obs.DocstringSamples, NewDocstringSample(block))
	}
	if total := obs.FunctionCount + obs.ClassCount; obs.DocumentedCount > total {
		obs.DocumentedCount = total
	}
	if strings.HasPrefix(strings.TrimSpace(content), "/**") {
		obs.HasFileDoc = true
	}

	for _, m := range javaCatchRe.FindAllStringSubmatch(content, -1) {
		sample := schema.ErrorHandlingSample{}
		caught := strings.TrimSpace(m[1])
		if caught == "Exception" || caught == "Throwable" {
			sample.HasBareCatch = true
		} else {
			sample.HasSpecificException = true
		}
		obs.ErrorHandlingSamples = append(obs.ErrorHandlingSamples, sample)
	}
	if len(obs.ErrorHandlingSamples) > 0 && javaFinallyRe.MatchString(content) {
		obs.ErrorHandlingSamples[0].HasFinally = true
	}
	if javaLogCatch.MatchString(content) {
		obs.UsesLoggingInHandler = true
	}

	obs.IfCheckCount = len(javaIfRe.FindAllString(content, -1))

	if len(names) > 0 {
		obs.NamingObserved = TallyIdentifiers(obs.NamingTally, names)
	}
	return obs
}
