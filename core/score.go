package core

import (
	"fmt"
	"math"

	"github.com/codemindhq/codemind/core/agg"
	"github.com/codemindhq/codemind/schema"
)

// qualityBase is the starting point of the quality score before coverage
// bonuses and length penalties. An empty batch scores exactly this value;
// any non-empty batch is floored at 30.
const qualityBase = 40

// Synthesize converts merged totals into the final style profile. It is a
// pure function of the totals, so re-running on the same batch always yields
// an identical profile.
func Synthesize(res *agg.MergeResult) *schema.StyleProfile {
	totals := res.Overall

	namingStyle, namingConfidence := dominantNaming(totals)
	docPct := documentationPct(totals)
	typePct := typeHintsPct(totals)
	errStyle := errorHandlingStyle(totals)
	quality := qualityScore(totals)

	// A batch with no functions still gets a minimal confidence when any
	// names were observed at all.
	if totals.FunctionCount == 0 && totals.NamingObserved > 0 {
		namingConfidence = math.Max(namingConfidence, 30.0)
	}

	profile := &schema.StyleProfile{
		NamingStyle:      namingStyle,
		NamingConfidence: round1(namingConfidence),

		DocumentationPercentage: round1(docPct),
		DocstringStyle:          dominantDocstringStyle(totals.DocstringSamples),
		TypeHintsPercentage:     round1(typePct),

		ErrorHandlingStyle:    errStyle,
		UsesLoggingInHandlers: totals.FilesWithLoggingHandlers > 0,

		CodeQualityScore: quality,
		ConsistencyScore: round1(namingConfidence),
		SkillLevel:       skillLevel(quality, typePct, docPct),

		TotalFunctions: totals.FunctionCount,
		TotalClasses:   totals.ClassCount,
		TotalLines:     totals.TotalLineCount,
		FilesAnalyzed:  totals.FilesAnalyzed,

		LanguagesDetected: res.Languages,
		PrimaryLanguage:   res.Primary,
		AllPatterns:       languagePatterns(res),

		Insights: insights(totals, quality),
	}
	return profile
}

// dominantNaming picks the largest naming bucket. Ties break on the fixed
// style order so output is stable; an empty tally defaults to snake_case
// with zero confidence.
func dominantNaming(totals *schema.AggregatedTotals) (schema.NamingStyle, float64) {
	if totals.NamingObserved == 0 {
		return schema.SnakeCase, 0
	}
	best := schema.SnakeCase
	bestCount := 0
	for _, style := range schema.AllNamingStyles {
		if count := totals.NamingTally[style]; count > bestCount {
			best = style
			bestCount = count
		}
	}
	if bestCount == 0 {
		return schema.SnakeCase, 0
	}
	return best, float64(bestCount) / float64(totals.NamingObserved) * 100
}

func documentationPct(totals *schema.AggregatedTotals) float64 {
	if totals.FunctionCount > 0 {
		return float64(totals.DocumentedCount) / float64(totals.FunctionCount) * 100
	}
	if totals.FilesWithFileDoc > 0 {
		// No functions, but file-level docs carry a partial signal.
		return 20.0
	}
	return 0
}

func typeHintsPct(totals *schema.AggregatedTotals) float64 {
	if totals.FunctionCount == 0 {
		return 0
	}
	return float64(totals.TypedFunctionCount) / float64(totals.FunctionCount) * 100
}

// errorHandlingStyle compares try/except-style constructs against
// if-condition checks. One side must dominate the other by more than 2x to
// win outright.
func errorHandlingStyle(totals *schema.AggregatedTotals) schema.ErrorHandlingStyle {
	tryCount := len(totals.ErrorHandlingSamples)
	ifCount := totals.IfCheckCount

	if tryCount+ifCount == 0 {
		return schema.BasicStyle
	}
	switch {
	case tryCount > ifCount*2:
		return schema.TryExceptStyle
	case ifCount > tryCount*2:
		return schema.IfElseStyle
	}
	return schema.MixedStyle
}

func qualityScore(totals *schema.AggregatedTotals) int {
	score := float64(qualityBase)

	if totals.FunctionCount > 0 {
		docRatio := float64(totals.DocumentedCount) / float64(totals.FunctionCount)
		score += docRatio * 20
		typeRatio := float64(totals.TypedFunctionCount) / float64(totals.FunctionCount)
		score += typeRatio * 15
	} else if totals.FilesWithFileDoc > 0 {
		score += 10
	}

	if totals.TotalLineCount > 0 {
		density := float64(totals.CommentLineCount) / float64(totals.TotalLineCount) * 100
		if density > 10 {
			score += math.Min(15, density/10)
		}
	}

	if len(totals.ErrorHandlingSamples)+totals.IfCheckCount > 0 {
		score += 10
	}
	if totals.FunctionCount > 0 || totals.ClassCount > 0 {
		score += 10
	}

	if len(totals.FunctionLengths) > 0 {
		sum := 0
		for _, length := range totals.FunctionLengths {
			sum += length
		}
		avg := float64(sum) / float64(len(totals.FunctionLengths))
		if avg > 100 {
			score -= 20
		} else if avg > 50 {
			score -= 10
		}
	}

	if totals.TotalLineCount > 0 {
		score = math.Max(score, 30)
	}
	return int(math.Min(100, math.Max(0, score)))
}

func skillLevel(quality int, typePct, docPct float64) schema.SkillLevel {
	switch {
	case quality >= 80 && typePct >= 50:
		return schema.Advanced
	case quality >= 60 || docPct >= 50:
		return schema.Intermediate
	}
	return schema.Beginner
}

// dominantDocstringStyle returns the most common sampled dialect, ties
// breaking on the fixed style order. No samples means simple.
func dominantDocstringStyle(samples []schema.DocstringSample) schema.DocstringStyle {
	if len(samples) == 0 {
		return schema.SimpleDoc
	}
	counts := make(map[schema.DocstringStyle]int, len(schema.AllDocstringStyles))
	for _, sample := range samples {
		counts[sample.Style]++
	}
	best := schema.SimpleDoc
	bestCount := 0
	for _, style := range schema.AllDocstringStyles {
		if counts[style] > bestCount {
			best = style
			bestCount = counts[style]
		}
	}
	return best
}

// languagePatterns builds the per-language slice of the profile from the
// language buckets.
func languagePatterns(res *agg.MergeResult) map[schema.Language]schema.LanguageSummary {
	out := make(map[schema.Language]schema.LanguageSummary, len(res.PerLanguage))
	for language, totals := range res.PerLanguage {
		style, _ := dominantNaming(totals)
		summary := schema.LanguageSummary{
			NamingStyle:             style,
			DocumentationPercentage: round1(documentationPct(totals)),
			TypeHintsPercentage:     round1(typeHintsPct(totals)),
			ErrorHandlingStyle:      errorHandlingStyle(totals),
		}
		if stats, ok := res.Stats[language]; ok {
			summary.FileCount = stats.FileCount
			summary.TotalLines = stats.TotalLines
		}
		out[language] = summary
	}
	return out
}

// insights derives up to five short observations from the totals. The
// strings are fixed templates over the same numbers the scores use, so the
// output is deterministic.
func insights(totals *schema.AggregatedTotals, quality int) []string {
	if totals.FilesAnalyzed == 0 {
		return nil
	}
	out := make([]string, 0, 5)

	style, _ := dominantNaming(totals)
	if totals.NamingObserved > 0 {
		out = append(out, fmt.Sprintf(
			"You consistently use %s naming (%d/%d identifiers)",
			style, totals.NamingTally[style], totals.NamingObserved))
	}

	docPct := documentationPct(totals)
	if docPct >= 80 {
		out = append(out, "Excellent documentation habits - you document most of your functions")
	} else if docPct < 50 {
		out = append(out, "Consider adding more docstrings to improve code clarity")
	}

	if typeHintsPct(totals) < 20 {
		out = append(out, "Type hints could help catch bugs early - ready to learn?")
	}

	if totals.FilesWithLoggingHandlers > 0 {
		out = append(out, "You use logging with error handling - great practice!")
	}

	if quality >= 75 {
		out = append(out, "Your code quality is excellent - keep it up!")
	} else if quality < 60 {
		out = append(out, "There's room for improvement - CodeMind can help!")
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
