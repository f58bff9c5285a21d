package extract

import (
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// trivialNames are loop indexes and throwaway identifiers that carry no
// convention signal. They are excluded from the tally unless excluding them
// would leave nothing to count.
var trivialNames = map[string]struct{}{
	"i": {}, "j": {}, "k": {},
	"x": {}, "y": {}, "z": {},
	"id": {}, "ok": {},
}

// ClassifyIdentifier buckets a single identifier into a naming convention.
// The second return is false for identifiers that fit no bucket (e.g.
// Mixed_Case with underscores).
func ClassifyIdentifier(name string) (schema.NamingStyle, bool) {
	if name == "" {
		return "", false
	}
	hasUnderscore := strings.Contains(name, "_")
	switch {
	case hasUnderscore && name == strings.ToUpper(name) && name != strings.ToLower(name):
		return schema.UpperCase, true
	case hasUnderscore && name == strings.ToLower(name):
		return schema.SnakeCase, true
	case !hasUnderscore && isUpperByte(name[0]):
		return schema.PascalCase, true
	case !hasUnderscore && isLowerByte(name[0]):
		return schema.CamelCase, true
	}
	return "", false
}

// TallyIdentifiers classifies a set of identifiers into the tally map and
// returns how many names were considered. Trivial and single-character names
// are filtered out first; if filtering removes everything, all names are
// used so a non-empty file never yields an empty naming signal. Names that
// fit no bucket still count toward the returned total, diluting confidence.
func TallyIdentifiers(tally map[schema.NamingStyle]int, names []string) int {
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if len(name) <= 1 {
			continue
		}
		if _, trivial := trivialNames[name]; trivial {
			continue
		}
		filtered = append(filtered, name)
	}
	if len(filtered) == 0 {
		filtered = names
	}
	for _, name := range filtered {
		if style, ok := ClassifyIdentifier(name); ok {
			tally[style]++
		}
	}
	return len(filtered)
}

func isUpperByte(b byte) bool { return b >= 'A' && b <= 'Z' }

func isLowerByte(b byte) bool { return b >= 'a' && b <= 'z' }
