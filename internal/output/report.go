package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gonum.org/v1/gonum/stat"

	"github.com/presagehq/presage/pkg/models"
)

// Report is the Renderable view of a multi-file analysis run.
type Report struct {
	Files   []models.FileResult `json:"files" yaml:"files"`
	Summary ReportSummary       `json:"summary" yaml:"summary"`
	Verbose bool                `json:"-" yaml:"-"`

	complexityWarn int
}

// ReportSummary carries run-level aggregates.
type ReportSummary struct {
	FilesAnalyzed  int                     `json:"files_analyzed" yaml:"files_analyzed"`
	TotalIssues    int                     `json:"total_issues" yaml:"total_issues"`
	BySeverity     map[models.Severity]int `json:"by_severity" yaml:"by_severity"`
	MeanComplexity float64                 `json:"mean_complexity" yaml:"mean_complexity"`
	P90Complexity  float64                 `json:"p90_complexity" yaml:"p90_complexity"`
	MaxComplexity  int                     `json:"max_complexity" yaml:"max_complexity"`
	OverComplexity int                     `json:"files_over_complexity_warn,omitempty" yaml:"files_over_complexity_warn,omitempty"`
}

// ReportOption is a functional option for configuring a Report.
type ReportOption func(*Report)

// WithComplexityWarn flags files whose complexity exceeds n. Zero
// disables the check.
func WithComplexityWarn(n int) ReportOption {
	return func(r *Report) {
		r.complexityWarn = n
	}
}

// NewReport builds a report from per-file results.
func NewReport(files []models.FileResult, verbose bool, opts ...ReportOption) *Report {
	r := &Report{
		Files:   files,
		Verbose: verbose,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Summary = summarize(files, r.complexityWarn)
	return r
}

func summarize(files []models.FileResult, warn int) ReportSummary {
	summary := ReportSummary{
		FilesAnalyzed: len(files),
		BySeverity:    make(map[models.Severity]int, 4),
	}

	complexities := make([]float64, 0, len(files))
	for _, f := range files {
		summary.TotalIssues += len(f.Result.Issues)
		for sev, n := range models.CountBySeverity(f.Result.Issues) {
			summary.BySeverity[sev] += n
		}
		complexities = append(complexities, float64(f.Result.Complexity))
		if f.Result.Complexity > summary.MaxComplexity {
			summary.MaxComplexity = f.Result.Complexity
		}
		if warn > 0 && f.Result.Complexity > warn {
			summary.OverComplexity++
		}
	}

	if len(complexities) > 0 {
		summary.MeanComplexity = stat.Mean(complexities, nil)
		sort.Float64s(complexities) // quantile requires sorted input
		summary.P90Complexity = stat.Quantile(0.9, stat.Empirical, complexities, nil)
	}

	return summary
}

// HasCritical reports whether any file produced a critical issue.
func (r *Report) HasCritical() bool {
	return r.Summary.BySeverity[models.SeverityCritical] > 0
}

func (r *Report) RenderData() any {
	return r
}

func (r *Report) RenderText(w io.Writer, colored bool) error {
	for _, f := range r.Files {
		if err := renderFileText(w, f, colored, r.Verbose, r.complexityWarn); err != nil {
			return err
		}
	}
	return r.renderSummaryText(w, colored)
}

func renderFileText(w io.Writer, f models.FileResult, colored, verbose bool, warn int) error {
	header := fmt.Sprintf("%s (%s)", f.Path, f.Language)
	if colored {
		color.New(color.Bold).Fprintln(w, header)
	} else {
		fmt.Fprintln(w, header)
	}

	res := f.Result
	if len(res.Issues) == 0 {
		if colored {
			color.Green("  No issues found")
		} else {
			fmt.Fprintln(w, "  No issues found")
		}
		writeComplexityWarn(w, colored, res.Complexity, warn)
		fmt.Fprintln(w)
		return nil
	}

	issues := make([]models.Issue, len(res.Issues))
	copy(issues, res.Issues)
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Severity.Weight() != issues[j].Severity.Weight() {
			return issues[i].Severity.Weight() > issues[j].Severity.Weight()
		}
		return issues[i].Line < issues[j].Line
	})

	table := issueTable(issues)
	if err := table.RenderText(w, colored); err != nil {
		return err
	}

	fmt.Fprintf(w, "  Complexity: %d  Priority: %s\n", res.Complexity, res.Priority)
	writeComplexityWarn(w, colored, res.Complexity, warn)
	if verbose {
		renderFlowText(w, res)
	}
	fmt.Fprintln(w)
	return nil
}

func writeComplexityWarn(w io.Writer, colored bool, complexity, warn int) {
	if warn <= 0 || complexity <= warn {
		return
	}
	line := fmt.Sprintf("  Warning: complexity %d exceeds threshold %d", complexity, warn)
	if colored {
		color.New(color.FgYellow).Fprintln(w, line)
	} else {
		fmt.Fprintln(w, line)
	}
}

// issueTable builds the per-file issue table.
func issueTable(issues []models.Issue) *Table {
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		rows = append(rows, []string{
			fmt.Sprintf("%d:%d", is.Line, is.Column),
			string(is.Severity),
			string(is.Type),
			is.Message,
			fmt.Sprintf("%.0f%%", is.Confidence*100),
		})
	}
	return NewTable("", []string{"Location", "Severity", "Category", "Message", "Confidence"}, rows, issues)
}

func renderFlowText(w io.Writer, res models.Result) {
	if len(res.CodeFlow) > 0 {
		fmt.Fprintln(w, "  Code flow:")
		for _, node := range res.CodeFlow {
			fmt.Fprintf(w, "    %-10s %s (line %d, complexity %d)\n", node.Type, node.Name, node.Line, node.Complexity)
		}
	}
	if len(res.DataDependencies) > 0 {
		fmt.Fprintln(w, "  Data dependencies:")
		for _, dep := range res.DataDependencies {
			fmt.Fprintf(w, "    %s [%s] defined %v used %v mutated %v\n",
				dep.Variable, dep.Scope, dep.DefinedAt, dep.UsedAt, dep.MutatedAt)
			for _, issue := range dep.PotentialIssues {
				fmt.Fprintf(w, "      ! %s\n", issue)
			}
		}
	}
}

func (r *Report) renderSummaryText(w io.Writer, colored bool) error {
	title := "Summary"
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("-", len(title)))

	s := r.Summary
	fmt.Fprintf(w, "Files analyzed: %d\n", s.FilesAnalyzed)
	fmt.Fprintf(w, "Total issues:   %d", s.TotalIssues)
	if s.TotalIssues > 0 {
		parts := make([]string, 0, 4)
		for _, sev := range []models.Severity{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow} {
			if n := s.BySeverity[sev]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, sev))
			}
		}
		fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(w)

	if s.FilesAnalyzed > 0 {
		fmt.Fprintf(w, "Complexity:     mean %.1f, p90 %.1f, max %d\n",
			s.MeanComplexity, s.P90Complexity, s.MaxComplexity)
	}
	if s.OverComplexity > 0 {
		fmt.Fprintf(w, "Over threshold: %d file(s) above complexity %d\n",
			s.OverComplexity, r.complexityWarn)
	}

	if colored && s.BySeverity[models.SeverityCritical] > 0 {
		color.Red("\n%d critical issue(s) require attention", s.BySeverity[models.SeverityCritical])
	}
	return nil
}

func (r *Report) RenderMarkdown(w io.Writer) error {
	fmt.Fprintln(w, "# Analysis Report")
	fmt.Fprintln(w)

	for _, f := range r.Files {
		fmt.Fprintf(w, "## %s (%s)\n\n", f.Path, f.Language)
		if len(f.Result.Issues) == 0 {
			fmt.Fprintln(w, "No issues found.")
			fmt.Fprintln(w)
			continue
		}
		table := issueTable(f.Result.Issues)
		if err := table.RenderMarkdown(w); err != nil {
			return err
		}
		fmt.Fprintf(w, "Complexity: %d, Priority: %s\n", f.Result.Complexity, f.Result.Priority)
		if r.complexityWarn > 0 && f.Result.Complexity > r.complexityWarn {
			fmt.Fprintf(w, "\n**Warning:** complexity exceeds threshold %d\n", r.complexityWarn)
		}
		fmt.Fprintln(w)
	}

	s := r.Summary
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Files analyzed: %d\n", s.FilesAnalyzed)
	fmt.Fprintf(w, "- Total issues: %d\n", s.TotalIssues)
	if s.FilesAnalyzed > 0 {
		fmt.Fprintf(w, "- Complexity: mean %.1f, p90 %.1f, max %d\n",
			s.MeanComplexity, s.P90Complexity, s.MaxComplexity)
	}
	fmt.Fprintln(w)
	return nil
}
