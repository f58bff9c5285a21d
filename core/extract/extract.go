// Package extract turns single source files into flat stylistic observations.
//
// Two tiers of extractors exist: structured extractors that understand the
// language's grammar (Go via go/parser, Python via an indentation-aware
// scanner) and regex heuristics for languages without a parser. Structured
// extraction that fails degrades to the heuristic tier instead of dropping
// the file, so a malformed file still contributes lines and a partial naming
// signal. Extraction never returns an error to the caller.
package extract

import (
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// File runs the extractor appropriate for the file's language and always
// returns an observation. The observation's Outcome field reports whether
// the structured path succeeded, degraded, or only generic counters ran.
func File(file schema.SourceFile) *schema.FileObservation {
	switch file.Language {
	case schema.LangPython:
		return Python(file.Content)
	case schema.LangGo:
		return Go(file.Filename, file.Content)
	case schema.LangJavaScript, schema.LangTypeScript:
		return Script(file.Language, file.Content)
	case schema.LangJava:
		return Java(file.Content)
	default:
		return Generic(file.Language, file.Content)
	}
}

// Generic collects the language-agnostic counters only: line count and
// comment-ish density. Used for unknown languages and for files beyond the
// per-language sampling cap.
func Generic(language schema.Language, content string) *schema.FileObservation {
	obs := schema.NewFileObservation(language, schema.ExtractionGeneric)
	obs.TotalLineCount = countLines(content)
	return obs
}

// countLines counts newline-delimited lines the way the rest of the pipeline
// does, so totals stay comparable across extractors.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// blockLength measures a definition's span in lines: the distance from its
// header to the last line indented deeper than the header (end - start, the
// same basis a syntax tree's end_line - start_line would give).
func blockLength(lines []string, header, headerIndent int) int {
	end := header
	for i := header + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentOf(lines[i]) <= headerIndent {
			break
		}
		end = i
	}
	return end - header
}

// indentOf returns the count of leading whitespace columns (tab = 1 column;
// relative comparison is all that matters here).
func indentOf(line string) int {
	for i := range len(line) {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}
