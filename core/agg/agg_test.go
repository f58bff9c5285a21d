package agg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/schema"
)

func TestFoldIsCommutative(t *testing.T) {
	a := schema.NewFileObservation(schema.LangPython, schema.ExtractionFull)
	a.FunctionCount = 2
	a.DocumentedCount = 1
	a.NamingTally[schema.SnakeCase] = 3
	a.TotalLineCount = 40

	b := schema.NewFileObservation(schema.LangPython, schema.ExtractionDegraded)
	b.NamingTally[schema.CamelCase] = 1
	b.TotalLineCount = 10

	forward := schema.NewAggregatedTotals()
	Fold(forward, a)
	Fold(forward, b)

	backward := schema.NewAggregatedTotals()
	Fold(backward, b)
	Fold(backward, a)

	assert.Equal(t, forward.FunctionCount, backward.FunctionCount)
	assert.Equal(t, forward.NamingTally, backward.NamingTally)
	assert.Equal(t, forward.TotalLineCount, backward.TotalLineCount)
	assert.Equal(t, forward.FilesDegraded, backward.FilesDegraded)
	assert.Equal(t, 2, forward.FilesAnalyzed)
	assert.Equal(t, 1, forward.FilesDegraded)
}

func TestMergeMultiLanguage(t *testing.T) {
	files := []schema.SourceFile{
		{Filename: "a.py", Content: "def get_data():\n    return 1\n"},
		{Filename: "b.py", Content: "def send_data():\n    return 2\n"},
		{Filename: "c.js", Content: "function getData() {\n  return 3;\n}\n"},
	}
	res := Merge(files)

	assert.Equal(t, schema.LangPython, res.Primary)
	require.Len(t, res.Languages, 2)
	assert.Equal(t, schema.LangPython, res.Languages[0])
	assert.Equal(t, schema.LangJavaScript, res.Languages[1])

	assert.Equal(t, 3, res.Overall.FilesAnalyzed)
	assert.Equal(t, 3, res.Overall.FunctionCount)
	assert.Equal(t, 2, res.PerLanguage[schema.LangPython].FunctionCount)
	assert.Equal(t, 2, res.Stats[schema.LangPython].FileCount)
}

func TestMergeUnknownExtension(t *testing.T) {
	files := []schema.SourceFile{
		{Filename: "data.xyz", Content: "some opaque payload\nwith two lines\n"},
	}
	res := Merge(files)

	assert.Equal(t, schema.LangUnknown, res.Primary)
	require.Len(t, res.Languages, 1)
	assert.Equal(t, schema.LangUnknown, res.Languages[0])
	assert.Equal(t, 1, res.Overall.FilesAnalyzed)
	assert.Zero(t, res.Overall.FunctionCount)
	assert.Equal(t, 3, res.Overall.TotalLineCount)
}

func TestMergeSamplingCap(t *testing.T) {
	var files []schema.SourceFile
	for i := 0; i < SampleCapPerLanguage+5; i++ {
		files = append(files, schema.SourceFile{
			Filename: fmt.Sprintf("f%d.py", i),
			Content:  "def handle_case():\n    return 0\n",
		})
	}
	res := Merge(files)

	totals := res.PerLanguage[schema.LangPython]
	require.NotNil(t, totals)
	// Only capped files run the structured extractor; the rest still count
	// files and lines.
	assert.Equal(t, SampleCapPerLanguage, totals.FunctionCount)
	assert.Equal(t, SampleCapPerLanguage+5, totals.FilesAnalyzed)
	assert.Equal(t, (SampleCapPerLanguage+5)*3, totals.TotalLineCount)
	assert.Equal(t, SampleCapPerLanguage+5, res.Stats[schema.LangPython].FileCount)
}

func TestMergeOrderIndependence(t *testing.T) {
	files := []schema.SourceFile{
		{Filename: "a.py", Content: "def first_one():\n    return 1\n"},
		{Filename: "b.js", Content: "const secondOne = () => 2;\n"},
		{Filename: "c.py", Content: "def third_one():\n    return 3\n"},
	}
	reversed := []schema.SourceFile{files[2], files[1], files[0]}

	res1 := Merge(files)
	res2 := Merge(reversed)

	assert.Equal(t, res1.Overall.NamingTally, res2.Overall.NamingTally)
	assert.Equal(t, res1.Overall.FunctionCount, res2.Overall.FunctionCount)
	assert.Equal(t, res1.Primary, res2.Primary)
	assert.Equal(t, res1.Languages, res2.Languages)
}

func TestMergeEmptyInput(t *testing.T) {
	res := Merge(nil)
	assert.Zero(t, res.Overall.FilesAnalyzed)
	assert.Equal(t, schema.LangUnknown, res.Primary)
	assert.Empty(t, res.Languages)
}
