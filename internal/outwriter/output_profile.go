package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/internal/parquet"
	"github.com/codemindhq/codemind/schema"
)

// PrintProfileResult outputs a style profile, dispatching based on the
// configured output format.
func PrintProfileResult(profile *schema.StyleProfile, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, profile)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileCSV(w, profile)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		record := parquet.ConvertProfile(profile, cfg.Owner, time.Now())
		if err := parquet.WriteProfileParquet(record, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileTable(profile, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeProfileTable generates and writes the human-readable table view.
func writeProfileTable(profile *schema.StyleProfile, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if cfg.UseEmojis {
		fmt.Fprintln(writer, "🧬 Style DNA")
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Attribute", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	quality := profile.CodeQualityScore
	qualityLabel := contract.GetPlainLabel(quality)
	if cfg.UseColors {
		qualityLabel = contract.GetColorLabel(quality)
	}

	data := [][]string{
		{"Naming style", fmt.Sprintf("%s (%.1f%% confidence)", profile.NamingStyle, profile.NamingConfidence)},
		{"Documentation", fmtPct(profile.DocumentationPercentage) + "%"},
		{"Docstring style", string(profile.DocstringStyle)},
		{"Type hints", fmtPct(profile.TypeHintsPercentage) + "%"},
		{"Error handling", string(profile.ErrorHandlingStyle)},
		{"Logs in handlers", strconv.FormatBool(profile.UsesLoggingInHandlers)},
		{"Quality score", fmt.Sprintf("%d (%s)", quality, qualityLabel)},
		{"Consistency", fmtPct(profile.ConsistencyScore) + "%"},
		{"Skill level", string(profile.SkillLevel)},
		{"Primary language", string(profile.PrimaryLanguage)},
		{"Functions / Classes", fmt.Sprintf("%d / %d", profile.TotalFunctions, profile.TotalClasses)},
		{"Files / Lines", fmt.Sprintf("%d / %d", profile.FilesAnalyzed, profile.TotalLines)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(profile.LanguagesDetected) > 0 {
		if err := writeLanguageTable(profile, writer); err != nil {
			return err
		}
	}

	width := terminalWidth()
	for _, insight := range profile.Insights {
		if _, err := fmt.Fprintf(writer, "- %s\n", truncateLine(insight, width-2)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "Analyzed %d files in %v. Store backend: %s\n",
		profile.FilesAnalyzed, duration, cfg.StoreBackend)
	return err
}

// writeLanguageTable writes the per-language breakdown.
func writeLanguageTable(profile *schema.StyleProfile, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Language", "Files", "Lines", "Naming", "Docs %", "Types %", "Errors"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, language := range profile.LanguagesDetected {
		summary, ok := profile.AllPatterns[language]
		if !ok {
			continue
		}
		data = append(data, []string{
			string(language),
			strconv.Itoa(summary.FileCount),
			strconv.Itoa(summary.TotalLines),
			string(summary.NamingStyle),
			fmtPct(summary.DocumentationPercentage),
			fmtPct(summary.TypeHintsPercentage),
			string(summary.ErrorHandlingStyle),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeProfileCSV writes the profile as one flat CSV record.
func writeProfileCSV(w io.Writer, profile *schema.StyleProfile) error {
	header := []string{
		"naming_style",
		"naming_confidence",
		"documentation_percentage",
		"docstring_style",
		"type_hints_percentage",
		"error_handling_style",
		"uses_logging_in_handlers",
		"code_quality_score",
		"quality_label",
		"consistency_score",
		"skill_level",
		"total_functions",
		"total_classes",
		"total_lines",
		"files_analyzed",
		"primary_language",
		"languages_detected",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		languages := make([]string, len(profile.LanguagesDetected))
		for i, language := range profile.LanguagesDetected {
			languages[i] = string(language)
		}
		rec := []string{
			string(profile.NamingStyle),
			fmtPct(profile.NamingConfidence),
			fmtPct(profile.DocumentationPercentage),
			string(profile.DocstringStyle),
			fmtPct(profile.TypeHintsPercentage),
			string(profile.ErrorHandlingStyle),
			strconv.FormatBool(profile.UsesLoggingInHandlers),
			strconv.Itoa(profile.CodeQualityScore),
			contract.GetPlainLabel(profile.CodeQualityScore),
			fmtPct(profile.ConsistencyScore),
			string(profile.SkillLevel),
			strconv.Itoa(profile.TotalFunctions),
			strconv.Itoa(profile.TotalClasses),
			strconv.Itoa(profile.TotalLines),
			strconv.Itoa(profile.FilesAnalyzed),
			string(profile.PrimaryLanguage),
			strings.Join(languages, "|"),
		}
		return cw.Write(rec)
	})
}
