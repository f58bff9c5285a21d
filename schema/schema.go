// Package schema has configs, models and global variables for all parts of codemind.
package schema

// SourceFile is one unit of input to the analysis pipeline. The caller
// (upload handler, GitHub fetcher, CLI walker) creates it; the classifier
// fills in Language when it is empty or Unknown.
type SourceFile struct {
	Filename string   `json:"filename"`
	Content  string   `json:"content"`
	Language Language `json:"language,omitempty"`
}

// DocstringSample describes a single documentation comment found on a
// function or class.
type DocstringSample struct {
	Length         int            // Length of the docstring in characters
	Style          DocstringStyle // Structural dialect (google, numpy, sphinx, simple)
	MentionsParams bool           // Whether the docstring references parameters
	MentionsReturn bool           // Whether the docstring references return values
}

// ErrorHandlingSample describes a single try/except-style construct.
type ErrorHandlingSample struct {
	HasSpecificException bool // At least one handler names an exception type
	HasBareCatch         bool // At least one handler catches everything
	HasFinally           bool // A finally/cleanup block exists
}

// FileObservation is the flat set of stylistic signals one extractor run
// pulls out of one file. Created fresh per file, consumed immediately by the
// aggregator, never retained.
type FileObservation struct {
	Language Language
	Outcome  ExtractionOutcome

	NamingTally    map[NamingStyle]int
	NamingObserved int // identifiers considered, classified or not

	FunctionCount      int
	ClassCount         int
	DocumentedCount    int // functions/classes carrying a doc comment
	TypedFunctionCount int // functions with >=1 parameter or return annotation

	DocstringSamples []DocstringSample
	FunctionLengths  []int
	ClassLengths     []int

	ErrorHandlingSamples []ErrorHandlingSample
	IfCheckCount         int // if-condition style error checks
	UsesLoggingInHandler bool

	HasFileDoc       bool // module/file-level doc comment
	CommentLineCount int
	TotalLineCount   int
}

// NewFileObservation returns an observation with its tally map initialized.
func NewFileObservation(lang Language, outcome ExtractionOutcome) *FileObservation {
	return &FileObservation{
		Language:    lang,
		Outcome:     outcome,
		NamingTally: make(map[NamingStyle]int),
	}
}

// AggregatedTotals is the fold of all FileObservations for a group of files
// (one language, or the whole batch). All fields are summed or concatenated;
// nothing here mutates after the group is fully folded.
type AggregatedTotals struct {
	NamingTally    map[NamingStyle]int
	NamingObserved int

	FunctionCount      int
	ClassCount         int
	DocumentedCount    int
	TypedFunctionCount int

	DocstringSamples []DocstringSample
	FunctionLengths  []int
	ClassLengths     []int

	ErrorHandlingSamples []ErrorHandlingSample
	IfCheckCount         int

	FilesWithDocstrings      int
	FilesWithTypeHints       int
	FilesWithLoggingHandlers int
	FilesWithFileDoc         int
	FilesDegraded            int

	CommentLineCount int
	TotalLineCount   int
	FilesAnalyzed    int
}

// NewAggregatedTotals returns zero-valued totals ready for folding.
func NewAggregatedTotals() *AggregatedTotals {
	return &AggregatedTotals{NamingTally: make(map[NamingStyle]int)}
}

// LanguageStats carries the lightweight per-language counters that are
// tracked for every file, including generic-bucket files that receive no
// style extraction.
type LanguageStats struct {
	FileCount  int     `json:"file_count"`
	TotalLines int     `json:"total_lines"`
	TotalBytes int     `json:"total_bytes"`
	AvgSize    float64 `json:"avg_file_size"`
}

// LanguageSummary is the per-language slice of the final profile.
type LanguageSummary struct {
	NamingStyle             NamingStyle        `json:"naming_style"`
	DocumentationPercentage float64            `json:"documentation_percentage"`
	TypeHintsPercentage     float64            `json:"type_hints_percentage"`
	ErrorHandlingStyle      ErrorHandlingStyle `json:"error_handling_style"`
	FileCount               int                `json:"file_count"`
	TotalLines              int                `json:"total_lines"`
}

// StyleProfile is the final output of the pipeline: a statistical
// fingerprint of an author's coding conventions ("style DNA"). Treated as an
// immutable value once synthesized; feedback learning produces a new one.
type StyleProfile struct {
	NamingStyle      NamingStyle `json:"naming_style"`
	NamingConfidence float64     `json:"naming_confidence"`

	DocumentationPercentage float64        `json:"documentation_percentage"`
	DocstringStyle          DocstringStyle `json:"docstring_style"`
	TypeHintsPercentage     float64        `json:"type_hints_percentage"`

	ErrorHandlingStyle    ErrorHandlingStyle `json:"error_handling_style"`
	UsesLoggingInHandlers bool               `json:"uses_logging_in_handlers"`

	CodeQualityScore int        `json:"code_quality_score"`
	ConsistencyScore float64    `json:"consistency_score"`
	SkillLevel       SkillLevel `json:"skill_level"`

	TotalFunctions int `json:"total_functions"`
	TotalClasses   int `json:"total_classes"`
	TotalLines     int `json:"total_lines"`
	FilesAnalyzed  int `json:"files_analyzed"`

	LanguagesDetected []Language                   `json:"languages_detected"`
	PrimaryLanguage   Language                     `json:"primary_language"`
	AllPatterns       map[Language]LanguageSummary `json:"all_patterns"`

	Insights []string `json:"insights"`
}

// StoredProfile wraps a StyleProfile with the persistence-layer fields the
// core itself has no concept of: an owner identity and interaction counters
// used by the feedback loop.
type StoredProfile struct {
	Owner               string       `json:"owner"`
	Profile             StyleProfile `json:"profile"`
	TotalInteractions   int          `json:"total_interactions"`
	SuggestionsAccepted int          `json:"suggestions_accepted"`
	SuggestionsRejected int          `json:"suggestions_rejected"`
	StyleConfidence     float64      `json:"style_confidence"`
}

// StoreStatus reports health information about the profile store backend.
type StoreStatus struct {
	Backend           DatabaseBackend `json:"backend"`
	Location          string          `json:"location"`
	ProfileCount      int             `json:"profile_count"`
	TotalInteractions int             `json:"total_interactions"`
}

// SuggestionResult is the typed response from the AI suggestion engine.
type SuggestionResult struct {
	HasSuggestion bool    `json:"has_suggestion"`
	ImprovedCode  string  `json:"improved_code"`
	Explanation   string  `json:"explanation"`
	Confidence    float64 `json:"confidence"`
}
