package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codemindhq/codemind/schema"
)

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		ident string
		want  schema.NamingStyle
		ok    bool
	}{
		{name: "snake", ident: "get_data", want: schema.SnakeCase, ok: true},
		{name: "camel", ident: "getData", want: schema.CamelCase, ok: true},
		{name: "pascal", ident: "GetData", want: schema.PascalCase, ok: true},
		{name: "upper", ident: "MAX_RETRIES", want: schema.UpperCase, ok: true},
		{name: "single lower word", ident: "fetch", want: schema.CamelCase, ok: true},
		{name: "mixed with underscore", ident: "Get_Data", ok: false},
		{name: "empty", ident: "", ok: false},
		{name: "leading underscore private", ident: "_helper", want: schema.SnakeCase, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyIdentifier(tt.ident)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTallyIdentifiersFiltersTrivial(t *testing.T) {
	tally := map[schema.NamingStyle]int{}
	TallyIdentifiers(tally, []string{"i", "j", "get_data", "getData"})
	assert.Equal(t, 1, tally[schema.SnakeCase])
	assert.Equal(t, 1, tally[schema.CamelCase])
	assert.Zero(t, tally[schema.PascalCase])
}

func TestTallyIdentifiersFallsBackWhenAllTrivial(t *testing.T) {
	tally := map[schema.NamingStyle]int{}
	TallyIdentifiers(tally, []string{"i", "ok"})
	// Filtering would empty the set, so the trivial names count after all.
	assert.Equal(t, 2, tally[schema.CamelCase])
}
