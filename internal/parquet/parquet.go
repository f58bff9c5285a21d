// Package parquet provides data structures and functions for exporting style
// profiles to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/codemindhq/codemind/schema"
)

// ProfileRecord is the flat Parquet projection of one style profile.
// One analysis run produces exactly one record.
type ProfileRecord struct {
	// Owner identifies whose code was analyzed (nullable for anonymous runs)
	Owner *string `parquet:"owner,optional,snappy"`

	// AnalyzedAt is when the profile was synthesized
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	NamingStyle      string  `parquet:"naming_style,snappy"`
	NamingConfidence float64 `parquet:"naming_confidence,snappy"`

	DocumentationPercentage float64 `parquet:"documentation_percentage,snappy"`
	DocstringStyle          string  `parquet:"docstring_style,snappy"`
	TypeHintsPercentage     float64 `parquet:"type_hints_percentage,snappy"`

	ErrorHandlingStyle    string `parquet:"error_handling_style,snappy"`
	UsesLoggingInHandlers bool   `parquet:"uses_logging_in_handlers,snappy"`

	CodeQualityScore int32   `parquet:"code_quality_score,snappy"`
	ConsistencyScore float64 `parquet:"consistency_score,snappy"`
	SkillLevel       string  `parquet:"skill_level,snappy"`

	TotalFunctions int32 `parquet:"total_functions,snappy"`
	TotalClasses   int32 `parquet:"total_classes,snappy"`
	TotalLines     int32 `parquet:"total_lines,snappy"`
	FilesAnalyzed  int32 `parquet:"files_analyzed,snappy"`

	PrimaryLanguage   string `parquet:"primary_language,snappy"`
	LanguagesDetected string `parquet:"languages_detected,snappy"` // pipe-delimited

	Insights string `parquet:"insights,snappy"` // pipe-delimited
}

// LanguageRecord is the per-language Parquet projection of one profile.
type LanguageRecord struct {
	Owner      *string   `parquet:"owner,optional,snappy"`
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	Language                string  `parquet:"language,snappy"`
	FileCount               int32   `parquet:"file_count,snappy"`
	TotalLines              int32   `parquet:"total_lines,snappy"`
	NamingStyle             string  `parquet:"naming_style,snappy"`
	DocumentationPercentage float64 `parquet:"documentation_percentage,snappy"`
	TypeHintsPercentage     float64 `parquet:"type_hints_percentage,snappy"`
	ErrorHandlingStyle      string  `parquet:"error_handling_style,snappy"`
}

// ConvertProfile flattens a profile into its Parquet record.
func ConvertProfile(profile *schema.StyleProfile, owner string, analyzedAt time.Time) ProfileRecord {
	languages := make([]string, len(profile.LanguagesDetected))
	for i, language := range profile.LanguagesDetected {
		languages[i] = string(language)
	}

	rec := ProfileRecord{
		AnalyzedAt:              analyzedAt,
		NamingStyle:             string(profile.NamingStyle),
		NamingConfidence:        profile.NamingConfidence,
		DocumentationPercentage: profile.DocumentationPercentage,
		DocstringStyle:          string(profile.DocstringStyle),
		TypeHintsPercentage:     profile.TypeHintsPercentage,
		ErrorHandlingStyle:      string(profile.ErrorHandlingStyle),
		UsesLoggingInHandlers:   profile.UsesLoggingInHandlers,
		CodeQualityScore:        int32(profile.CodeQualityScore),
		ConsistencyScore:        profile.ConsistencyScore,
		SkillLevel:              string(profile.SkillLevel),
		TotalFunctions:          int32(profile.TotalFunctions),
		TotalClasses:            int32(profile.TotalClasses),
		TotalLines:              int32(profile.TotalLines),
		FilesAnalyzed:           int32(profile.FilesAnalyzed),
		PrimaryLanguage:         string(profile.PrimaryLanguage),
		LanguagesDetected:       strings.Join(languages, "|"),
		Insights:                strings.Join(profile.Insights, "|"),
	}
	if owner != "" {
		rec.Owner = &owner
	}
	return rec
}

// ConvertLanguages flattens the per-language patterns, ordered by the
// profile's detected-language list so output is deterministic.
func ConvertLanguages(profile *schema.StyleProfile, owner string, analyzedAt time.Time) []LanguageRecord {
	records := make([]LanguageRecord, 0, len(profile.LanguagesDetected))
	for _, language := range profile.LanguagesDetected {
		summary, ok := profile.AllPatterns[language]
		if !ok {
			continue
		}
		rec := LanguageRecord{
			AnalyzedAt:              analyzedAt,
			Language:                string(language),
			FileCount:               int32(summary.FileCount),
			TotalLines:              int32(summary.TotalLines),
			NamingStyle:             string(summary.NamingStyle),
			DocumentationPercentage: summary.DocumentationPercentage,
			TypeHintsPercentage:     summary.TypeHintsPercentage,
			ErrorHandlingStyle:      string(summary.ErrorHandlingStyle),
		}
		if owner != "" {
			rec.Owner = &owner
		}
		records = append(records, rec)
	}
	return records
}

// WriteProfileParquet writes one profile record to a Parquet file.
func WriteProfileParquet(record ProfileRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the ProfileRecord struct tags
	writer := parquet.NewGenericWriter[ProfileRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write([]ProfileRecord{record}); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteLanguagesParquet writes per-language records to a Parquet file.
func WriteLanguagesParquet(records []LanguageRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[LanguageRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
