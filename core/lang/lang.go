// Package lang classifies source files into programming languages.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// RegistrationOrder fixes the order languages were added to the extension
// table. It drives the deterministic tie-break when two languages have the
// same file count in a batch.
var RegistrationOrder = []schema.Language{
	schema.LangPython,
	schema.LangJavaScript,
	schema.LangTypeScript,
	schema.LangJava,
	schema.LangC,
	schema.LangCPP,
	schema.LangCSharp,
	schema.LangGo,
	schema.LangRust,
	schema.LangRuby,
	schema.LangPHP,
	schema.LangSwift,
	schema.LangKotlin,
	schema.LangScala,
	schema.LangR,
	schema.LangMATLAB,
	schema.LangShell,
	schema.LangHTML,
	schema.LangCSS,
	schema.LangVue,
	schema.LangSvelte,
	schema.LangDart,
	schema.LangLua,
	schema.LangPerl,
	schema.LangSQL,
}

// languageExtensions maps each language to its recognized file extensions.
var languageExtensions = map[schema.Language][]string{
	schema.LangPython:     {".py", ".pyw", ".pyx"},
	schema.LangJavaScript: {".js", ".jsx", ".mjs"},
	schema.LangTypeScript: {".ts", ".tsx"},
	schema.LangJava:       {".java"},
	schema.LangC:          {".c", ".h"},
	schema.LangCPP:        {".cpp", ".cc", ".cxx", ".hpp", ".hxx"},
	schema.LangCSharp:     {".cs"},
	schema.LangGo:         {".go"},
	schema.LangRust:       {".rs"},
	schema.LangRuby:       {".rb"},
	schema.LangPHP:        {".php"},
	schema.LangSwift:      {".swift"},
	schema.LangKotlin:     {".kt", ".kts"},
	schema.LangScala:      {".scala"},
	schema.LangR:          {".r"},
	schema.LangMATLAB:     {".m"},
	schema.LangShell:      {".sh", ".bash", ".zsh"},
	schema.LangHTML:       {".html", ".htm"},
	schema.LangCSS:        {".css", ".scss", ".sass", ".less"},
	schema.LangVue:        {".vue"},
	schema.LangSvelte:     {".svelte"},
	schema.LangDart:       {".dart"},
	schema.LangLua:        {".lua"},
	schema.LangPerl:       {".pl", ".pm"},
	schema.LangSQL:        {".sql"},
}

// extensionIndex is the flattened lowercase extension -> language lookup.
var extensionIndex = buildExtensionIndex()

func buildExtensionIndex() map[string]schema.Language {
	idx := make(map[string]schema.Language)
	for _, language := range RegistrationOrder {
		for _, ext := range languageExtensions[language] {
			idx[ext] = language
		}
	}
	return idx
}

// contentProbeLimit bounds how much of a file the content-signature fallback
// inspects.
const contentProbeLimit = 500

// Content signature patterns, checked in order on the lowercased probe.
var (
	pythonKeywordRe  = regexp.MustCompile(`\b(import|from|def|class|if __name__)\b`)
	jsKeywordRe      = regexp.MustCompile(`\b(function|const|let|var)\b|=>|require\(|import\s`)
	javaKeywordRe    = regexp.MustCompile(`\b(public\s+class|import\s+java\.|package\s+\w)`)
	cIncludeRe       = regexp.MustCompile(`#include\s*[<"]`)
	htmlSignatureRe  = regexp.MustCompile(`<!doctype\s+html|<html|<head>`)
	cssSignatureRe   = regexp.MustCompile(`@(media|import|keyframes)|(?m)^\s*[.#][\w-]+\s*\{`)
	pythonShebangRe  = regexp.MustCompile(`#!/usr/bin/(env )?python`)
	goPackageRe      = regexp.MustCompile(`(?m)^package\s+\w+$`)
	goFuncRe         = regexp.MustCompile(`\bfunc\s+\w+\s*\(`)
	shellShebangRe   = regexp.MustCompile(`#!/bin/(ba|z)?sh`)
	rubyShebangRe    = regexp.MustCompile(`#!/usr/bin/(env )?ruby`)
	phpOpenTagRe     = regexp.MustCompile(`<\?php`)
	sqlStatementRe   = regexp.MustCompile(`\b(select\s+.+\s+from|create\s+table|insert\s+into)\b`)
	cppNamespaceHint = regexp.MustCompile(`\bnamespace\b|std::`)
)

// FromExtension maps a file extension (e.g. ".py") to a language.
// Returns Unknown when the extension is not in the table.
func FromExtension(ext string) schema.Language {
	if language, ok := extensionIndex[strings.ToLower(ext)]; ok {
		return language
	}
	return schema.LangUnknown
}

// Classify determines the language of a file, trying the extension table
// first and falling back to content signatures on the first ~500 characters.
// Pure and deterministic; returns Unknown when no rule matches.
func Classify(filename, content string) schema.Language {
	if ext := filepath.Ext(filename); ext != "" {
		if language := FromExtension(ext); language != schema.LangUnknown {
			return language
		}
	}
	return fromContent(content)
}

// fromContent inspects the head of the file for language signatures.
func fromContent(content string) schema.Language {
	probe := content
	if len(probe) > contentProbeLimit {
		probe = probe[:contentProbeLimit]
	}
	lower := strings.ToLower(probe)

	// Shebangs and open tags are the strongest signals.
	switch {
	case pythonShebangRe.MatchString(lower):
		return schema.LangPython
	case shellShebangRe.MatchString(lower):
		return schema.LangShell
	case rubyShebangRe.MatchString(lower):
		return schema.LangRuby
	case phpOpenTagRe.MatchString(lower):
		return schema.LangPHP
	}

	if htmlSignatureRe.MatchString(lower) {
		return schema.LangHTML
	}
	if goPackageRe.MatchString(probe) && goFuncRe.MatchString(probe) {
		return schema.LangGo
	}
	if javaKeywordRe.MatchString(lower) {
		return schema.LangJava
	}
	if cIncludeRe.MatchString(lower) {
		if cppNamespaceHint.MatchString(lower) {
			return schema.LangCPP
		}
		return schema.LangC
	}
	// Python keywords without a shebang still need a second keyword hit to
	// beat the JavaScript patterns, since "import" and "class" overlap.
	if pythonKeywordRe.MatchString(lower) && strings.Contains(lower, "def ") {
		return schema.LangPython
	}
	if jsKeywordRe.MatchString(lower) {
		return schema.LangJavaScript
	}
	if cssSignatureRe.MatchString(probe) {
		return schema.LangCSS
	}
	if sqlStatementRe.MatchString(lower) {
		return schema.LangSQL
	}
	return schema.LangUnknown
}

// RegistrationRank returns the position of a language in the fixed table
// order. Unknown and unregistered languages sort last.
func RegistrationRank(language schema.Language) int {
	for i, l := range RegistrationOrder {
		if l == language {
			return i
		}
	}
	return len(RegistrationOrder)
}
