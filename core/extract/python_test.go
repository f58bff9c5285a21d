package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/schema"
)

const pyWellDocumented = `"""Utility helpers."""
import logging

logger = logging.getLogger(__name__)

MAX_RETRIES = 3


def fetch_records(source: str, limit: int = 10) -> list:
    """Fetch records from a source.

    Args:
        source: Where to read from.
        limit: Maximum records returned.

    Returns:
        The records found.
    """
    results = []
    try:
        results = do_fetch(source, limit)
    except ValueError as exc:
        logger.warning("bad source: %s", exc)
    finally:
        close_source(source)
    if not results:
        return []
    return results


class RecordStore:
    """Keeps fetched records around."""

    def add_record(self, record):
        self.records.append(record)
`

func TestPythonWellDocumented(t *testing.T) {
	obs := Python(pyWellDocumented)
	require.Equal(t, schema.ExtractionFull, obs.Outcome)

	assert.Equal(t, 2, obs.FunctionCount)
	assert.Equal(t, 1, obs.ClassCount)
	assert.True(t, obs.HasFileDoc)
	assert.Equal(t, 1, obs.TypedFunctionCount)

	// fetch_records and RecordStore carry docstrings, add_record does not.
	assert.Equal(t, 2, obs.DocumentedCount)
	require.Len(t, obs.DocstringSamples, 2)
	assert.Equal(t, schema.GoogleDoc, obs.DocstringSamples[0].Style)
	assert.True(t, obs.DocstringSamples[0].MentionsParams)
	assert.True(t, obs.DocstringSamples[0].MentionsReturn)
	assert.Equal(t, schema.SimpleDoc, obs.DocstringSamples[1].Style)

	require.Len(t, obs.ErrorHandlingSamples, 1)
	assert.True(t, obs.ErrorHandlingSamples[0].HasSpecificException)
	assert.False(t, obs.ErrorHandlingSamples[0].HasBareCatch)
	assert.True(t, obs.ErrorHandlingSamples[0].HasFinally)
	assert.True(t, obs.UsesLoggingInHandler)

	assert.Positive(t, obs.IfCheckCount)
	assert.Equal(t, 2, obs.NamingTally[schema.SnakeCase])
	assert.Equal(t, 1, obs.NamingTally[schema.PascalCase])
	assert.Equal(t, 1, obs.NamingTally[schema.CamelCase])
	assert.Equal(t, 1, obs.NamingTally[schema.UpperCase])
}

func TestPythonBareExcept(t *testing.T) {
	src := "try:\n    risky()\nexcept:\n    pass\n"
	obs := Python(src)
	require.Equal(t, schema.ExtractionFull, obs.Outcome)
	require.Len(t, obs.ErrorHandlingSamples, 1)
	assert.True(t, obs.ErrorHandlingSamples[0].HasBareCatch)
	assert.False(t, obs.ErrorHandlingSamples[0].HasSpecificException)
	assert.False(t, obs.UsesLoggingInHandler)
}

func TestPythonMultiLineHeader(t *testing.T) {
	src := "def build_index(\n    source: str,\n    limit: int,\n) -> dict:\n    return {}\n"
	obs := Python(src)
	require.Equal(t, schema.ExtractionFull, obs.Outcome)
	assert.Equal(t, 1, obs.FunctionCount)
	assert.Equal(t, 1, obs.TypedFunctionCount)
}

func TestPythonDegradesOnUnterminatedString(t *testing.T) {
	src := "def broken():\n    \"\"\"never closed\n    value = 1\n"
	obs := Python(src)
	assert.Equal(t, schema.ExtractionDegraded, obs.Outcome)
	assert.Equal(t, 0, obs.FunctionCount)
	// The fallback still yields a naming signal from assignment targets.
	assert.Equal(t, 1, obs.NamingTally[schema.CamelCase])
	assert.Equal(t, 4, obs.TotalLineCount)
}

func TestPythonEmptyContent(t *testing.T) {
	obs := Python("")
	assert.Equal(t, schema.ExtractionFull, obs.Outcome)
	assert.Zero(t, obs.TotalLineCount)
	assert.Zero(t, obs.FunctionCount)
	assert.Empty(t, obs.NamingTally)
}

func TestPythonFunctionLengthSpan(t *testing.T) {
	src := "def short():\n    a = 1\n    return a\n\n\ndef other():\n    pass\n"
	obs := Python(src)
	require.Equal(t, schema.ExtractionFull, obs.Outcome)
	require.Len(t, obs.FunctionLengths, 2)
	assert.Equal(t, 2, obs.FunctionLengths[0])
	assert.Equal(t, 1, obs.FunctionLengths[1])
}
