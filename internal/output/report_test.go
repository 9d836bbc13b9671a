package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/presagehq/presage/pkg/models"
)

func fileResult(path string, complexity int, issues ...models.Issue) models.FileResult {
	return models.FileResult{
		Path:     path,
		Language: "javascript",
		Result: models.Result{
			Issues:     issues,
			Complexity: complexity,
			Priority:   models.PriorityLow,
		},
	}
}

func TestSummarize(t *testing.T) {
	files := []models.FileResult{
		fileResult("a.js", 2, models.Issue{Severity: models.SeverityCritical}),
		fileResult("b.js", 4, models.Issue{Severity: models.SeverityLow}, models.Issue{Severity: models.SeverityLow}),
		fileResult("c.js", 6),
	}

	r := NewReport(files, false)
	s := r.Summary

	if s.FilesAnalyzed != 3 {
		t.Errorf("FilesAnalyzed = %d, want 3", s.FilesAnalyzed)
	}
	if s.TotalIssues != 3 {
		t.Errorf("TotalIssues = %d, want 3", s.TotalIssues)
	}
	if s.BySeverity[models.SeverityCritical] != 1 || s.BySeverity[models.SeverityLow] != 2 {
		t.Errorf("BySeverity = %v", s.BySeverity)
	}
	if math.Abs(s.MeanComplexity-4.0) > 0.001 {
		t.Errorf("MeanComplexity = %f, want 4.0", s.MeanComplexity)
	}
	if s.MaxComplexity != 6 {
		t.Errorf("MaxComplexity = %d, want 6", s.MaxComplexity)
	}
	if s.P90Complexity < s.MeanComplexity || s.P90Complexity > float64(s.MaxComplexity) {
		t.Errorf("P90Complexity = %f out of [mean, max]", s.P90Complexity)
	}
}

func TestHasCritical(t *testing.T) {
	with := NewReport([]models.FileResult{
		fileResult("a.js", 1, models.Issue{Severity: models.SeverityCritical}),
	}, false)
	if !with.HasCritical() {
		t.Error("expected HasCritical true")
	}

	without := NewReport([]models.FileResult{
		fileResult("a.js", 1, models.Issue{Severity: models.SeverityHigh}),
	}, false)
	if without.HasCritical() {
		t.Error("expected HasCritical false")
	}
}

func TestReportRenderText(t *testing.T) {
	files := []models.FileResult{
		fileResult("a.js", 3, models.Issue{
			Severity:    models.SeverityHigh,
			Type:        models.IssueSecurity,
			Message:     "Dynamic code evaluation",
			Line:        4,
			Column:      2,
			Confidence:  0.9,
			CodePattern: "eval_usage",
		}),
		fileResult("clean.js", 1),
	}

	var buf bytes.Buffer
	if err := NewReport(files, false).RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"a.js (javascript)",
		"Dynamic code evaluation",
		"4:2",
		"clean.js (javascript)",
		"No issues found",
		"Files analyzed: 2",
		"Total issues:   1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestReportRenderTextSortsBySeverity(t *testing.T) {
	files := []models.FileResult{
		fileResult("a.js", 1,
			models.Issue{Severity: models.SeverityLow, Message: "minor thing", Line: 1},
			models.Issue{Severity: models.SeverityCritical, Message: "major thing", Line: 9},
		),
	}

	var buf bytes.Buffer
	if err := NewReport(files, false).RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "major thing") > strings.Index(out, "minor thing") {
		t.Error("critical issue should render before low issue")
	}
}

func TestReportRenderMarkdown(t *testing.T) {
	files := []models.FileResult{
		fileResult("a.js", 2, models.Issue{
			Severity: models.SeverityMedium,
			Type:     models.IssueBugRisk,
			Message:  "Loose equality",
			Line:     3,
		}),
	}

	var buf bytes.Buffer
	if err := NewReport(files, false).RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "# Analysis Report") {
		t.Error("missing report heading")
	}
	if !strings.Contains(out, "## a.js (javascript)") {
		t.Error("missing file heading")
	}
	if !strings.Contains(out, "Loose equality") {
		t.Error("missing issue row")
	}
	if !strings.Contains(out, "## Summary") {
		t.Error("missing summary section")
	}
}

func TestReportVerboseIncludesFlow(t *testing.T) {
	fr := fileResult("a.js", 2, models.Issue{Severity: models.SeverityLow, Message: "x", Line: 1})
	fr.Result.CodeFlow = []models.CodeFlowNode{
		{ID: "main:1:1", Type: models.FlowFunction, Name: "main", Line: 1, Complexity: 1},
	}
	fr.Result.DataDependencies = []models.DataDependency{
		{Variable: "count", Scope: models.ScopeGlobal, DefinedAt: []int{1}},
	}

	var verbose, terse bytes.Buffer
	if err := NewReport([]models.FileResult{fr}, true).RenderText(&verbose, false); err != nil {
		t.Fatal(err)
	}
	if err := NewReport([]models.FileResult{fr}, false).RenderText(&terse, false); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(verbose.String(), "Code flow:") {
		t.Error("verbose report missing code flow")
	}
	if !strings.Contains(verbose.String(), "count") {
		t.Error("verbose report missing dependencies")
	}
	if strings.Contains(terse.String(), "Code flow:") {
		t.Error("terse report should omit code flow")
	}
}

func TestComplexityWarnThreshold(t *testing.T) {
	files := []models.FileResult{
		fileResult("hot.js", 20, models.Issue{Severity: models.SeverityLow, Message: "x", Line: 1}),
		fileResult("cool.js", 3),
	}

	r := NewReport(files, false, WithComplexityWarn(15))
	if r.Summary.OverComplexity != 1 {
		t.Errorf("OverComplexity = %d, want 1", r.Summary.OverComplexity)
	}

	var buf bytes.Buffer
	if err := r.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "complexity 20 exceeds threshold 15") {
		t.Errorf("text report missing warning:\n%s", out)
	}
	if !strings.Contains(out, "Over threshold: 1 file(s) above complexity 15") {
		t.Errorf("summary missing threshold line:\n%s", out)
	}

	var md bytes.Buffer
	if err := r.RenderMarkdown(&md); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md.String(), "complexity exceeds threshold 15") {
		t.Errorf("markdown report missing warning:\n%s", md.String())
	}
}

func TestComplexityWarnDisabled(t *testing.T) {
	files := []models.FileResult{fileResult("hot.js", 20)}

	r := NewReport(files, false)
	if r.Summary.OverComplexity != 0 {
		t.Errorf("OverComplexity = %d, want 0 without a threshold", r.Summary.OverComplexity)
	}

	var buf bytes.Buffer
	if err := r.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "exceeds threshold") {
		t.Error("warning rendered with the check disabled")
	}
}

func TestEmptyReportSummary(t *testing.T) {
	r := NewReport(nil, false)
	if r.Summary.FilesAnalyzed != 0 || r.Summary.TotalIssues != 0 {
		t.Errorf("empty summary = %+v", r.Summary)
	}
}
