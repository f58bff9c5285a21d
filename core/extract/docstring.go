package extract

import (
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// DetectDocstringStyle identifies the structural dialect of a documentation
// comment.
func DetectDocstringStyle(doc string) schema.DocstringStyle {
	lower := strings.ToLower(doc)

	if strings.Contains(lower, "args:") || strings.Contains(lower, "returns:") || strings.Contains(lower, "raises:") {
		if strings.Contains(doc, ":") && strings.Contains(doc, "\n") {
			return schema.GoogleDoc
		}
	}
	if strings.Contains(lower, "parameters") && strings.Contains(doc, "----------") {
		return schema.NumpyDoc
	}
	if strings.Contains(lower, ":param") || strings.Contains(lower, ":return:") {
		return schema.SphinxDoc
	}
	return schema.SimpleDoc
}

// NewDocstringSample builds the per-docstring record from raw comment text.
func NewDocstringSample(doc string) schema.DocstringSample {
	lower := strings.ToLower(doc)
	return schema.DocstringSample{
		Length:         len(doc),
		Style:          DetectDocstringStyle(doc),
		MentionsParams: strings.Contains(lower, "param") || strings.Contains(lower, "args"),
		MentionsReturn: strings.Contains(lower, "return"),
	}
}
