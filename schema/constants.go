package schema

// Custom string types for type safety.
type (
	// Language represents a programming language label.
	Language string

	// NamingStyle represents a naming-convention bucket.
	NamingStyle string

	// DocstringStyle represents a documentation-comment dialect.
	DocstringStyle string

	// ErrorHandlingStyle represents the dominant error-handling idiom.
	ErrorHandlingStyle string

	// SkillLevel represents the inferred skill tier of an author.
	SkillLevel string

	// ExtractionOutcome reports how thoroughly a file could be analyzed.
	ExtractionOutcome string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for profile storage.
	DatabaseBackend string
)

// All languages recognized by the extension table. LangUnknown is the
// sentinel for files that match no rule.
const (
	LangPython     Language = "Python"
	LangJavaScript Language = "JavaScript"
	LangTypeScript Language = "TypeScript"
	LangJava       Language = "Java"
	LangC          Language = "C"
	LangCPP        Language = "C++"
	LangCSharp     Language = "C#"
	LangGo         Language = "Go"
	LangRust       Language = "Rust"
	LangRuby       Language = "Ruby"
	LangPHP        Language = "PHP"
	LangSwift      Language = "Swift"
	LangKotlin     Language = "Kotlin"
	LangScala      Language = "Scala"
	LangR          Language = "R"
	LangMATLAB     Language = "MATLAB"
	LangShell      Language = "Shell"
	LangHTML       Language = "HTML"
	LangCSS        Language = "CSS"
	LangVue        Language = "Vue"
	LangSvelte     Language = "Svelte"
	LangDart       Language = "Dart"
	LangLua        Language = "Lua"
	LangPerl       Language = "Perl"
	LangSQL        Language = "SQL"
	LangUnknown    Language = "Unknown"
)

// All naming-convention buckets.
const (
	SnakeCase  NamingStyle = "snake_case"
	CamelCase  NamingStyle = "camelCase"
	PascalCase NamingStyle = "PascalCase"
	UpperCase  NamingStyle = "UPPER_CASE"
)

// AllNamingStyles lists buckets in a fixed order for deterministic ties.
var AllNamingStyles = []NamingStyle{SnakeCase, CamelCase, PascalCase, UpperCase}

// All docstring dialects.
const (
	GoogleDoc DocstringStyle = "google"
	NumpyDoc  DocstringStyle = "numpy"
	SphinxDoc DocstringStyle = "sphinx"
	SimpleDoc DocstringStyle = "simple"
)

// AllDocstringStyles lists dialects in a fixed order for deterministic ties.
var AllDocstringStyles = []DocstringStyle{GoogleDoc, NumpyDoc, SphinxDoc, SimpleDoc}

// All error-handling idioms.
const (
	TryExceptStyle ErrorHandlingStyle = "try_except"
	IfElseStyle    ErrorHandlingStyle = "if_else"
	MixedStyle     ErrorHandlingStyle = "mixed"
	BasicStyle     ErrorHandlingStyle = "basic"
)

// All skill tiers.
const (
	Beginner     SkillLevel = "beginner"
	Intermediate SkillLevel = "intermediate"
	Advanced     SkillLevel = "advanced"
)

// All extraction outcomes.
const (
	// ExtractionFull means the language-specific extractor ran to completion.
	ExtractionFull ExtractionOutcome = "full"
	// ExtractionDegraded means parsing failed and regex fallback produced a
	// partial naming/line signal.
	ExtractionDegraded ExtractionOutcome = "degraded"
	// ExtractionGeneric means only language-agnostic counters were collected.
	ExtractionGeneric ExtractionOutcome = "generic"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// FeedbackAction is the user's verdict on a suggestion.
type FeedbackAction string

// All feedback actions.
const (
	FeedbackAccept  FeedbackAction = "accept"
	FeedbackReject  FeedbackAction = "reject"
	FeedbackAskMore FeedbackAction = "ask_more"
)

// ValidFeedbackActions lists all valid feedback actions.
var ValidFeedbackActions = map[FeedbackAction]struct{}{
	FeedbackAccept:  {},
	FeedbackReject:  {},
	FeedbackAskMore: {},
}
