// Package agg folds per-file observations into language buckets and
// repository-wide totals. Every operation here is a commutative sum or
// concatenation, so the profile never depends on file order.
package agg

import (
	"github.com/codemindhq/codemind/core/extract"
	"github.com/codemindhq/codemind/core/lang"
	"github.com/codemindhq/codemind/schema"
)

// SampleCapPerLanguage bounds how many files per language run the full
// extractor. Files past the cap still contribute line counts through the
// generic tier.
const SampleCapPerLanguage = 10

// MergeResult is the aggregate view of one batch of source files.
type MergeResult struct {
	PerLanguage map[schema.Language]*schema.AggregatedTotals
	Stats       map[schema.Language]*schema.LanguageStats
	Overall     *schema.AggregatedTotals
	Primary     schema.Language
	Languages   []schema.Language
}

// Fold accumulates one observation into the running totals.
func Fold(totals *schema.AggregatedTotals, obs *schema.FileObservation) {
	totals.FilesAnalyzed++
	if obs.Outcome == schema.ExtractionDegraded {
		totals.FilesDegraded++
	}

	for style, count := range obs.NamingTally {
		totals.NamingTally[style] += count
	}
	totals.NamingObserved += obs.NamingObserved
	totals.FunctionCount += obs.FunctionCount
	totals.ClassCount += obs.ClassCount
	totals.DocumentedCount += obs.DocumentedCount
	totals.TypedFunctionCount += obs.TypedFunctionCount
	totals.DocstringSamples = append(totals.DocstringSamples, obs.DocstringSamples...)
	totals.FunctionLengths = append(totals.FunctionLengths, obs.FunctionLengths...)
	totals.ClassLengths = append(totals.ClassLengths, obs.ClassLengths...)
	totals.ErrorHandlingSamples = append(totals.ErrorHandlingSamples, obs.ErrorHandlingSamples...)
	totals.IfCheckCount += obs.IfCheckCount
	totals.CommentLineCount += obs.CommentLineCount
	totals.TotalLineCount += obs.TotalLineCount

	if len(obs.DocstringSamples) > 0 || obs.DocumentedCount > 0 {
		totals.FilesWithDocstrings++
	}
	if obs.TypedFunctionCount > 0 {
		totals.FilesWithTypeHints++
	}
	if obs.UsesLoggingInHandler {
		totals.FilesWithLoggingHandlers++
	}
	if obs.HasFileDoc {
		totals.FilesWithFileDoc++
	}
}

// Merge classifies, extracts and folds a batch of files. Per-language
// buckets beyond the sampling cap fall back to generic extraction so their
// lines still count toward size statistics.
func Merge(files []schema.SourceFile) *MergeResult {
	res := &MergeResult{
		PerLanguage: make(map[schema.Language]*schema.AggregatedTotals),
		Stats:       make(map[schema.Language]*schema.LanguageStats),
		Overall:     schema.NewAggregatedTotals(),
	}
	sampled := make(map[schema.Language]int)

	for _, file := range files {
		language := file.Language
		if language == "" || language == schema.LangUnknown {
			language = lang.Classify(file.Filename, file.Content)
		}
		file.Language = language

		stats, ok := res.Stats[language]
		if !ok {
			stats = &schema.LanguageStats{}
			res.Stats[language] = stats
		}
		stats.FileCount++
		stats.TotalBytes += len(file.Content)

		var obs *schema.FileObservation
		switch {
		case language == schema.LangUnknown:
			obs = extract.Generic(language, file.Content)
		case sampled[language] >= SampleCapPerLanguage:
			obs = extract.Generic(language, file.Content)
		default:
			sampled[language]++
			obs = extract.File(file)
		}
		stats.TotalLines += obs.TotalLineCount

		totals, ok := res.PerLanguage[language]
		if !ok {
			totals = schema.NewAggregatedTotals()
			res.PerLanguage[language] = totals
		}
		Fold(totals, obs)
		Fold(res.Overall, obs)
	}

	for _, stats := range res.Stats {
		if stats.FileCount > 0 {
			stats.AvgSize = float64(stats.TotalBytes) / float64(stats.FileCount)
		}
	}

	res.Primary = primaryLanguage(res.Stats)
	res.Languages = detectedLanguages(res.Stats)
	return res
}

// primaryLanguage picks the language with the most files. Unknown only wins
// when it is the sole bucket; ties break on classifier registration order so
// the result is stable.
func primaryLanguage(stats map[schema.Language]*schema.LanguageStats) schema.Language {
	best := schema.LangUnknown
	bestCount := -1
	for _, language := range lang.RegistrationOrder {
		s, ok := stats[language]
		if !ok {
			continue
		}
		if s.FileCount > bestCount {
			best = language
			bestCount = s.FileCount
		}
	}
	if bestCount <= 0 {
		if _, ok := stats[schema.LangUnknown]; ok {
			return schema.LangUnknown
		}
	}
	return best
}

// detectedLanguages lists detected languages ordered by descending file
// count, registration order breaking ties. Unknown files are reported last
// when present.
func detectedLanguages(stats map[schema.Language]*schema.LanguageStats) []schema.Language {
	var out []schema.Language
	for _, language := range lang.RegistrationOrder {
		if _, ok := stats[language]; ok {
			out = append(out, language)
		}
	}
	// Stable insertion sort by descending file count keeps the registration
	// order for equal counts.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && stats[out[j]].FileCount > stats[out[j-1]].FileCount; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if _, ok := stats[schema.LangUnknown]; ok {
		out = append(out, schema.LangUnknown)
	}
	return out
}
