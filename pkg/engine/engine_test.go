package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presagehq/presage/pkg/models"
	"github.com/presagehq/presage/pkg/parser"
)

func findIssue(issues []models.Issue, pattern string) *models.Issue {
	for i := range issues {
		if issues[i].CodePattern == pattern {
			return &issues[i]
		}
	}
	return nil
}

func TestAnalyzeEmpty(t *testing.T) {
	result := New().Analyze("", parser.LangJavaScript)
	require.NotNil(t, result)

	assert.Empty(t, result.Issues)
	assert.Empty(t, result.CodeFlow)
	assert.Empty(t, result.DataDependencies)
	assert.Empty(t, result.ControlFlowPaths)
	assert.Equal(t, 0, result.Complexity)
	assert.Equal(t, models.PriorityLow, result.Priority)

	// Slices must be non-nil so serialized output shows [] not null.
	assert.NotNil(t, result.Issues)
	assert.NotNil(t, result.CodeFlow)
	assert.NotNil(t, result.DataDependencies)
	assert.NotNil(t, result.ControlFlowPaths)
}

func TestAnalyzeInfiniteLoop(t *testing.T) {
	source := "while (true) {\n  poll();\n}\n"
	result := New().Analyze(source, parser.LangJavaScript)

	// Both the text scan and the traversal fire on this input.
	assert.NotNil(t, findIssue(result.Issues, "infinite_loop_risk"))
	assert.NotNil(t, findIssue(result.Issues, "infinite_loop"))
	assert.Equal(t, models.PriorityCritical, result.Priority)

	require.Len(t, result.ControlFlowPaths, 1)
	assert.True(t, result.ControlFlowPaths[0].PotentialDeadCode)
}

func TestAnalyzeMissingIncrement(t *testing.T) {
	source := "let i = 0;\nwhile (i < 10) {\n  total = total + i;\n}\n"
	result := New().Analyze(source, parser.LangJavaScript)

	issue := findIssue(result.Issues, "missing_loop_increment")
	require.NotNil(t, issue)
	assert.Equal(t, models.SeverityCritical, issue.Severity)
	assert.Equal(t, models.PriorityCritical, result.Priority)
}

func TestAnalyzeIncrementFixes(t *testing.T) {
	source := "let i = 0;\nwhile (i < 10) {\n  i++;\n}\n"
	result := New().Analyze(source, parser.LangJavaScript)
	assert.Nil(t, findIssue(result.Issues, "missing_loop_increment"))
}

func TestAnalyzeAssignmentInCondition(t *testing.T) {
	source := "let x = 1;\nif (x = 5) {\n  act();\n}\n"
	result := New().Analyze(source, parser.LangJavaScript)

	issue := findIssue(result.Issues, "assignment_in_condition")
	require.NotNil(t, issue)
	assert.InDelta(t, 0.95, issue.Confidence, 0.001)
	assert.Equal(t, 2, issue.Line)
}

func TestAnalyzeIdempotent(t *testing.T) {
	source := "function f(a) {\n  let x = a;\n  while (x < 5) {}\n  return x;\n}\n"
	eng := New()
	first := eng.Analyze(source, parser.LangJavaScript)
	second := eng.Analyze(source, parser.LangJavaScript)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of identical input diverged")
	}
}

func TestAnalyzeScanWithoutParse(t *testing.T) {
	// Pattern scan runs against raw text even when the language has no
	// grammar and the pseudo-AST finds nothing.
	result := New().Analyze("eval(payload)", parser.LangRuby)
	assert.NotNil(t, findIssue(result.Issues, "eval_usage"))
}

func TestAnalyzePseudoLanguage(t *testing.T) {
	source := "def handler(req, res, next, ctx, log, db, cache):\n    total = 0\n"
	result := New().Analyze(source, parser.LangPython)

	assert.NotNil(t, findIssue(result.Issues, "too_many_parameters"))
	assert.NotEmpty(t, result.CodeFlow)
	assert.NotEmpty(t, result.DataDependencies)
}

func TestAnalyzeCleanCode(t *testing.T) {
	source := "function add(a, b) {\n  return a + b;\n}\n"
	result := New().Analyze(source, parser.LangJavaScript)

	assert.Empty(t, result.Issues)
	assert.Equal(t, models.PriorityLow, result.Priority)
	assert.NotEmpty(t, result.CodeFlow)
}

func TestAnalyzeComplexityCountsIssues(t *testing.T) {
	clean := New().Analyze("function f() { return 1; }", parser.LangJavaScript)
	risky := New().Analyze("function f() { eval(x); return 1; }", parser.LangJavaScript)
	assert.Greater(t, risky.Complexity, clean.Complexity,
		"issue weights must raise aggregate complexity")
}

func TestWithMaxParams(t *testing.T) {
	source := "function f(a, b, c) { return a; }"
	strict := New(WithMaxParams(2)).Analyze(source, parser.LangJavaScript)
	assert.NotNil(t, findIssue(strict.Issues, "too_many_parameters"))

	lax := New().Analyze(source, parser.LangJavaScript)
	assert.Nil(t, findIssue(lax.Issues, "too_many_parameters"))
}

func TestWithPatternsDisabled(t *testing.T) {
	source := "while (true) {\n  eval(payload);\n}\n"
	result := New(WithPatterns(false)).Analyze(source, parser.LangJavaScript)

	// The text scan is off; the traversal still runs.
	assert.Nil(t, findIssue(result.Issues, "eval_usage"))
	assert.Nil(t, findIssue(result.Issues, "infinite_loop_risk"))
	assert.NotNil(t, findIssue(result.Issues, "infinite_loop"))
	assert.NotEmpty(t, result.CodeFlow)
}

func TestWithFlowDisabled(t *testing.T) {
	source := "while (true) {\n  eval(payload);\n}\n"
	result := New(WithFlow(false)).Analyze(source, parser.LangJavaScript)

	// The traversal is off; the text scan still runs.
	assert.NotNil(t, findIssue(result.Issues, "eval_usage"))
	assert.NotNil(t, findIssue(result.Issues, "infinite_loop_risk"))
	assert.Nil(t, findIssue(result.Issues, "infinite_loop"))
	assert.Empty(t, result.CodeFlow)
	assert.Empty(t, result.DataDependencies)
	assert.Empty(t, result.ControlFlowPaths)
}

func TestBothStagesDisabled(t *testing.T) {
	source := "while (true) { eval(payload); }"
	result := New(WithPatterns(false), WithFlow(false)).Analyze(source, parser.LangJavaScript)

	assert.Empty(t, result.Issues)
	assert.Equal(t, 0, result.Complexity)
	assert.Equal(t, models.PriorityLow, result.Priority)
}

func TestAnalyzeFile(t *testing.T) {
	fr := New().AnalyzeFile("src/app.ts", "const x = 1;")
	require.NotNil(t, fr)
	assert.Equal(t, "src/app.ts", fr.Path)
	assert.Equal(t, "typescript", fr.Language)
	assert.NotNil(t, fr.Result.Issues)
}
