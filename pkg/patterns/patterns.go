// Package patterns scans raw source text for known risky idioms. The
// scanner is purely textual and makes no use of the AST, so it keeps
// working when parsing fails.
package patterns

import (
	"regexp"
	"strings"

	"github.com/presagehq/presage/pkg/models"
)

// Pattern maps a named idiom to the regexps that detect it plus its
// fixed severity, confidence and canned advice.
type Pattern struct {
	Name       string
	Regexps    []*regexp.Regexp
	Severity   models.Severity
	Confidence float64
	Message    string
	Suggestion string
	QuickFix   string
}

// Category groups patterns under one issue type.
type Category struct {
	Type     models.IssueType
	Patterns []Pattern
}

// Scanner holds the three category tables. It carries no matching
// state: every scan is an explicit find-all pass, so concurrent scans
// cannot contaminate each other.
type Scanner struct {
	categories []Category
}

// New creates a scanner with the default bug-risk, security and
// performance tables.
func New() *Scanner {
	return &Scanner{categories: defaultCategories()}
}

// Scan reports one issue per non-overlapping regex match per pattern.
// The same source region may produce issues from multiple categories;
// nothing is deduplicated.
func (s *Scanner) Scan(text string) []models.Issue {
	var issues []models.Issue
	for _, cat := range s.categories {
		for _, pat := range cat.Patterns {
			for _, re := range pat.Regexps {
				for _, loc := range re.FindAllStringIndex(text, -1) {
					line, col := locate(text, loc[0])
					issues = append(issues, models.Issue{
						Type:        cat.Type,
						Severity:    pat.Severity,
						Message:     pat.Message,
						Line:        line,
						Column:      col,
						Suggestion:  pat.Suggestion,
						Confidence:  pat.Confidence,
						CodePattern: pat.Name,
						QuickFix:    pat.QuickFix,
					})
				}
			}
		}
	}
	return issues
}

// locate derives line and column from a byte offset: line is the number
// of newlines in the prefix plus one, column is the offset minus the
// index of the previous newline.
func locate(text string, offset int) (int, int) {
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := offset - strings.LastIndexByte(prefix, '\n')
	return line, col
}

func defaultCategories() []Category {
	return []Category{
		{
			Type: models.IssueBugRisk,
			Patterns: []Pattern{
				{
					Name: "infinite_loop_risk",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`while\s*\(\s*true\s*\)`),
						regexp.MustCompile(`for\s*\(\s*;\s*;\s*\)`),
					},
					Severity:   models.SeverityCritical,
					Confidence: 0.8,
					Message:    "Unconditional loop detected; verify an exit path exists",
					Suggestion: "Add a break condition or loop over a bounded range",
				},
				{
					Name: "loose_equality",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`[^=!<>]==[^=]`),
					},
					Severity:   models.SeverityMedium,
					Confidence: 0.6,
					Message:    "Loose equality coerces operand types",
					Suggestion: "Use === to compare without type coercion",
					QuickFix:   "===",
				},
				{
					Name: "empty_catch",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`catch\s*(\([^)]*\))?\s*\{\s*\}`),
					},
					Severity:   models.SeverityMedium,
					Confidence: 0.7,
					Message:    "Empty catch block swallows errors silently",
					Suggestion: "Handle the error or rethrow it with context",
				},
			},
		},
		{
			Type: models.IssueSecurity,
			Patterns: []Pattern{
				{
					Name: "eval_usage",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`\beval\s*\(`),
						regexp.MustCompile(`new\s+Function\s*\(`),
					},
					Severity:   models.SeverityHigh,
					Confidence: 0.9,
					Message:    "Dynamic code evaluation can execute untrusted input",
					Suggestion: "Avoid eval; parse data with JSON.parse or a safe interpreter",
				},
				{
					Name: "inner_html_assignment",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`\.innerHTML\s*=`),
						regexp.MustCompile(`document\.write\s*\(`),
					},
					Severity:   models.SeverityHigh,
					Confidence: 0.9,
					Message:    "Raw HTML injection is an XSS vector",
					Suggestion: "Use textContent or a sanitizing templating layer",
					QuickFix:   ".textContent =",
				},
				{
					Name: "hardcoded_secret",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`(?i)\b(password|secret|api[_-]?key|token)\s*[:=]\s*['"][^'"]{4,}['"]`),
					},
					Severity:   models.SeverityHigh,
					Confidence: 0.9,
					Message:    "Possible hardcoded credential in source",
					Suggestion: "Load secrets from the environment or a secret manager",
				},
			},
		},
		{
			Type: models.IssuePerformance,
			Patterns: []Pattern{
				{
					Name: "sync_filesystem_call",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`\b(readFileSync|writeFileSync|appendFileSync|execSync)\s*\(`),
					},
					Severity:   models.SeverityMedium,
					Confidence: 0.7,
					Message:    "Synchronous I/O blocks the event loop",
					Suggestion: "Use the async variant with await",
				},
				{
					Name: "deep_clone_roundtrip",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`JSON\.parse\s*\(\s*JSON\.stringify\s*\(`),
					},
					Severity:   models.SeverityMedium,
					Confidence: 0.7,
					Message:    "Serialize/deserialize round trip is a slow way to clone",
					Suggestion: "Use structuredClone for deep copies",
					QuickFix:   "structuredClone(",
				},
				{
					Name: "array_hole_delete",
					Regexps: []*regexp.Regexp{
						regexp.MustCompile(`\bdelete\s+\w+\[`),
					},
					Severity:   models.SeverityMedium,
					Confidence: 0.7,
					Message:    "delete on array elements creates holes and deoptimizes",
					Suggestion: "Use splice to remove elements",
				},
			},
		},
	}
}
