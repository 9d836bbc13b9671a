package diagnostics

import "strings"

// Hint carries auxiliary data for range mapping, currently the unified
// diff of the change that triggered analysis.
type Hint struct {
	Diff string
}

// MapToRange locates the document range an issue message most likely
// refers to. Heuristics apply in a fixed priority order; each falls
// through to the next when its anchor line is absent. The mapping is
// deliberately approximate (unrelated issues can collapse onto the
// same line), and downstream tooling relies on this exact fallback
// order, so keep it stable.
func MapToRange(doc *Document, message string, hint *Hint) Range {
	msg := strings.ToLower(message)

	if strings.Contains(msg, "infinite loop") || strings.Contains(msg, "while") {
		if i := doc.firstLineContaining("while"); i >= 0 {
			return doc.lineRange(i)
		}
	}

	if strings.Contains(msg, "null") || strings.Contains(msg, "undefined") ||
		strings.Contains(msg, "length") {
		if i := doc.firstLineContaining(".length"); i >= 0 {
			return doc.lineRange(i)
		}
	}

	if strings.Contains(msg, "semicolon") {
		if i := firstUnterminatedStatement(doc); i >= 0 {
			return doc.lineRange(i)
		}
	}

	if hint != nil && hint.Diff != "" {
		if added := firstAddedLine(hint.Diff); added != "" {
			if i := doc.firstLineContaining(added); i >= 0 {
				return doc.lineRange(i)
			}
		}
	}

	if i := doc.firstNonEmptyLine(); i >= 0 {
		return doc.lineRange(i)
	}

	return Range{}
}

// firstUnterminatedStatement finds the first return/let/const line that
// does not end with a semicolon.
func firstUnterminatedStatement(doc *Document) int {
	for i := 0; i < doc.LineCount(); i++ {
		trimmed := strings.TrimSpace(doc.Line(i))
		if trimmed == "" {
			continue
		}
		starts := strings.HasPrefix(trimmed, "return") ||
			strings.HasPrefix(trimmed, "let ") ||
			strings.HasPrefix(trimmed, "const ")
		if starts && !strings.HasSuffix(trimmed, ";") {
			return i
		}
	}
	return -1
}

// firstAddedLine extracts the content of the first added line of the
// first hunk in a unified diff.
func firstAddedLine(diff string) string {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			return strings.TrimSpace(strings.TrimPrefix(line, "+"))
		}
	}
	return ""
}
