package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

// errPythonScan marks a structural scan that could not finish, e.g. a
// triple-quoted string or a def header left open at end of file.
var errPythonScan = errors.New("python structural scan failed")

var (
	pyDefRe     = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	pyClassRe   = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_]\w*)`)
	pyExceptRe  = regexp.MustCompile(`^\s*except\b([^:]*):`)
	pyFinallyRe = regexp.MustCompile(`^\s*finally\s*:`)
	pyIfRe      = regexp.MustCompile(`^\s*(?:if|elif)\b`)
	pyAssignRe  = regexp.MustCompile(`^([A-Za-z_]\w*)\s*=(?:[^=]|$)`)
	pyParamAnnRe = regexp.MustCompile(`[(,]\s*\w+\s*:`)
	pyLogCallRe  = regexp.MustCompile(`\b[\w.]*log\w*(?:\.\w+)*\s*\(`)

	pyFallbackAssignRe = regexp.MustCompile(`(?m)^\s*([A-Za-z_]\w*)\s*=[^=]`)
)

// pyHeaderMaxLines bounds how far a multi-line def header may stretch before
// the scan gives up on the file.
const pyHeaderMaxLines = 50

// Python extracts stylistic observations from Python source. The structured
// indentation-aware scan is attempted first; when it fails the file degrades
// to a regex pass that still yields a naming signal and line counts, so one
// malformed file never aborts a batch.
func Python(content string) *schema.FileObservation {
	obs, err := scanPython(content)
	if err != nil {
		return degradePython(content)
	}
	return obs
}

// degradePython is the fallback tier: assignment-like identifiers plus line
// counts, flagged as degraded.
func degradePython(content string) *schema.FileObservation {
	obs := schema.NewFileObservation(schema.LangPython, schema.ExtractionDegraded)
	obs.TotalLineCount = countLines(content)

	var names []string
	for _, m := range pyFallbackAssignRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	if len(names) > 0 {
		obs.NamingObserved = TallyIdentifiers(obs.NamingTally, names)
	}
	for _, line := range strings.Split(content, "\n") {
		if isPyComment(line) {
			obs.CommentLineCount++
		}
	}
	return obs
}

// scanPython walks the file line by line, tracking def/class headers,
// docstrings, try/except constructs and top-level assignments.
func scanPython(content string) (*schema.FileObservation, error) {
	obs := schema.NewFileObservation(schema.LangPython, schema.ExtractionFull)
	lines := strings.Split(content, "\n")
	obs.TotalLineCount = len(lines)
	if content == "" {
		obs.TotalLineCount = 0
	}

	var names []string
	seenCode := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}
		if isPyComment(line) {
			obs.CommentLineCount++
			continue
		}

		// Statement-level triple-quoted string. The first one in the file is
		// the module docstring.
		if delim := tripleQuoteDelim(trimmed); delim != "" {
			_, end, ok := readTripleQuoted(lines, i, delim)
			if !ok {
				return nil, errPythonScan
			}
			if !seenCode {
				obs.HasFileDoc = true
			}
			i = end
			seenCode = true
			continue
		}
		seenCode = true

		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			header, headerEnd, ok := readPyHeader(lines, i)
			if !ok {
				return nil, errPythonScan
			}
			obs.FunctionCount++
			names = append(names, m[2])

			if strings.Contains(header, "->") || pyParamAnnRe.MatchString(header) {
				obs.TypedFunctionCount++
			}
			obs.FunctionLengths = append(obs.FunctionLengths, blockLength(lines, i, indent))

			if doc, docEnd, found := readPyDocstring(lines, headerEnd+1, indent); found {
				if docEnd < 0 {
					return nil, errPythonScan
				}
				obs.DocumentedCount++
				obs.DocstringSamples = append(obs.DocstringSamples, NewDocstringSample(doc))
				i = docEnd
			} else {
				i = headerEnd
			}
			continue
		}

		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			obs.ClassCount++
			names = append(names, m[2])
			obs.ClassLengths = append(obs.ClassLengths, blockLength(lines, i, indent))

			if doc, docEnd, found := readPyDocstring(lines, i+1, indent); found {
				if docEnd < 0 {
					return nil, errPythonScan
				}
				obs.DocumentedCount++
				obs.DocstringSamples = append(obs.DocstringSamples, NewDocstringSample(doc))
				i = docEnd
			}
			continue
		}

		if strings.HasPrefix(trimmed, "try") && (trimmed == "try:" || strings.HasPrefix(trimmed, "try :")) {
			scanPyTry(lines, i, indentOf(line), obs)
			continue
		}

		if pyIfRe.MatchString(line) {
			obs.IfCheckCount++
			continue
		}

		if indentOf(line) == 0 {
			if m := pyAssignRe.FindStringSubmatch(line); m != nil {
				names = append(names, m[1])
			}
		}
	}

	if len(names) > 0 {
		obs.NamingObserved = TallyIdentifiers(obs.NamingTally, names)
	}
	return obs, nil
}

// scanPyTry reads the clauses of one try block: except handlers (typed or
// bare), finally, and a logging heuristic on handler bodies.
func scanPyTry(lines []string, start, indent int, obs *schema.FileObservation) {
	sample := schema.ErrorHandlingSample{}
	inHandler := false

scan:
	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lineIndent := indentOf(line)
		if lineIndent < indent {
			break
		}
		if lineIndent == indent {
			switch {
			case pyExceptRe.MatchString(line):
				inHandler = true
				clause := strings.TrimSpace(pyExceptRe.FindStringSubmatch(line)[1])
				if clause == "" {
					sample.HasBareCatch = true
				} else {
					sample.HasSpecificException = true
				}
			case pyFinallyRe.MatchString(line):
				sample.HasFinally = true
				inHandler = false
			case strings.HasPrefix(trimmed, "else"):
				inHandler = false
			default:
				// A sibling statement at the same indent ends the construct.
				break scan
			}
			continue
		}
		if inHandler && pyLogCallRe.MatchString(strings.ToLower(trimmed)) {
			obs.UsesLoggingInHandler = true
		}
	}
	obs.ErrorHandlingSamples = append(obs.ErrorHandlingSamples, sample)
}

// readPyHeader joins a possibly multi-line def header until its parentheses
// balance and the trailing colon appears.
func readPyHeader(lines []string, start int) (string, int, bool) {
	var sb strings.Builder
	depth := 0
	for i := start; i < len(lines) && i < start+pyHeaderMaxLines; i++ {
		line := lines[i]
		sb.WriteString(line)
		sb.WriteString("\n")
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		if depth <= 0 && strings.HasSuffix(strings.TrimSpace(stripPyComment(line)), ":") {
			return sb.String(), i, true
		}
	}
	return "", start, false
}

// readPyDocstring looks for a docstring as the first significant statement
// of a block starting after line `from`. Returns found=false when the block
// opens with something else; docEnd=-1 signals an unterminated docstring.
func readPyDocstring(lines []string, from, headerIndent int) (string, int, bool) {
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentOf(lines[i]) <= headerIndent {
			return "", 0, false
		}
		delim := tripleQuoteDelim(trimmed)
		if delim == "" {
			return "", 0, false
		}
		doc, end, ok := readTripleQuoted(lines, i, delim)
		if !ok {
			return "", -1, true
		}
		return doc, end, true
	}
	return "", 0, false
}

// readTripleQuoted consumes a triple-quoted string starting at line `start`
// and returns its inner text and closing line index.
func readTripleQuoted(lines []string, start int, delim string) (string, int, bool) {
	first := strings.TrimSpace(lines[start])
	rest := first[len(delim):]
	if idx := strings.Index(rest, delim); idx >= 0 {
		return rest[:idx], start, true
	}
	var sb strings.Builder
	sb.WriteString(rest)
	for i := start + 1; i < len(lines); i++ {
		if idx := strings.Index(lines[i], delim); idx >= 0 {
			sb.WriteString("\n")
			sb.WriteString(lines[i][:idx])
			return sb.String(), i, true
		}
		sb.WriteString("\n")
		sb.WriteString(lines[i])
	}
	return "", 0, false
}

// tripleQuoteDelim returns the opening delimiter when a trimmed line starts
// a triple-quoted string, else "".
func tripleQuoteDelim(trimmed string) string {
	for _, prefix := range []string{`r"""`, `"""`, "r'''", "'''"} {
		if strings.HasPrefix(trimmed, prefix) {
			return prefix[len(prefix)-3:]
		}
	}
	return ""
}

func isPyComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "#") && len(trimmed) > 1
}

// stripPyComment removes a trailing line comment so header detection is not
// confused by "# ..." text.
func stripPyComment(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}
