// Package diagnostics maps abstract issues back onto concrete
// line/column ranges of a live document snapshot for rendering.
package diagnostics

import "strings"

// Position is a zero-based line/character pair, matching editor
// diagnostics conventions.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span within a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Document is an immutable snapshot of an open file's text.
type Document struct {
	lines []string
}

// NewDocument splits text into a line-indexed snapshot.
func NewDocument(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// LineCount returns the number of lines in the snapshot.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of the zero-based line, or "" out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// lineRange covers the full extent of one line.
func (d *Document) lineRange(i int) Range {
	return Range{
		Start: Position{Line: i},
		End:   Position{Line: i, Character: len(d.Line(i))},
	}
}

// firstLineContaining returns the zero-based index of the first line
// containing the substring, or -1.
func (d *Document) firstLineContaining(sub string) int {
	for i, line := range d.lines {
		if strings.Contains(line, sub) {
			return i
		}
	}
	return -1
}

// firstNonEmptyLine returns the index of the first line with any
// non-whitespace content, or -1.
func (d *Document) firstNonEmptyLine() int {
	for i, line := range d.lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}
