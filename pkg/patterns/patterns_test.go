package patterns

import (
	"testing"

	"github.com/presagehq/presage/pkg/models"
)

func findPattern(issues []models.Issue, name string) *models.Issue {
	for i := range issues {
		if issues[i].CodePattern == name {
			return &issues[i]
		}
	}
	return nil
}

func TestScanDetections(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		pattern  string
		severity models.Severity
		issIt    models.IssueType
	}{
		{"while true", "while (true) {}", "infinite_loop_risk", models.SeverityCritical, models.IssueBugRisk},
		{"bare for", "for (;;) { tick(); }", "infinite_loop_risk", models.SeverityCritical, models.IssueBugRisk},
		{"loose equality", "if (a == b) {}", "loose_equality", models.SeverityMedium, models.IssueBugRisk},
		{"empty catch", "try { f(); } catch (e) {}", "empty_catch", models.SeverityMedium, models.IssueBugRisk},
		{"eval", "eval(userInput)", "eval_usage", models.SeverityHigh, models.IssueSecurity},
		{"new Function", "const f = new Function(body)", "eval_usage", models.SeverityHigh, models.IssueSecurity},
		{"innerHTML", "el.innerHTML = data", "inner_html_assignment", models.SeverityHigh, models.IssueSecurity},
		{"document.write", "document.write(html)", "inner_html_assignment", models.SeverityHigh, models.IssueSecurity},
		{"secret", `const password = "hunter22"`, "hardcoded_secret", models.SeverityHigh, models.IssueSecurity},
		{"api key", `apiKey: "sk-abcdef123456"`, "hardcoded_secret", models.SeverityHigh, models.IssueSecurity},
		{"sync io", "const data = readFileSync(path)", "sync_filesystem_call", models.SeverityMedium, models.IssuePerformance},
		{"clone roundtrip", "const copy = JSON.parse(JSON.stringify(obj))", "deep_clone_roundtrip", models.SeverityMedium, models.IssuePerformance},
		{"array delete", "delete items[3]", "array_hole_delete", models.SeverityMedium, models.IssuePerformance},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := s.Scan(tt.source)
			issue := findPattern(issues, tt.pattern)
			if issue == nil {
				t.Fatalf("pattern %q not detected in %q", tt.pattern, tt.source)
			}
			if issue.Severity != tt.severity {
				t.Errorf("severity = %s, want %s", issue.Severity, tt.severity)
			}
			if issue.Type != tt.issIt {
				t.Errorf("type = %s, want %s", issue.Type, tt.issIt)
			}
			if issue.Confidence <= 0 || issue.Confidence > 1 {
				t.Errorf("confidence %f out of range", issue.Confidence)
			}
		})
	}
}

func TestScanNoFalsePositives(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		pattern string
	}{
		{"strict equality", "if (a === b) {}", "loose_equality"},
		{"not equal strict", "if (a !== b) {}", "loose_equality"},
		{"comparison le", "if (a <= b) {}", "loose_equality"},
		{"bounded while", "while (i < 10) { i++; }", "infinite_loop_risk"},
		{"catch with body", "try { f(); } catch (e) { log(e); }", "empty_catch"},
		{"evaluate is not eval", "evaluate(expr)", "eval_usage"},
		{"delete property", "delete obj.field", "array_hole_delete"},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if issue := findPattern(s.Scan(tt.source), tt.pattern); issue != nil {
				t.Errorf("pattern %q should not match %q", tt.pattern, tt.source)
			}
		})
	}
}

func TestScanLineAndColumn(t *testing.T) {
	source := "const x = 1;\nconst y = 2;\n  eval(z);\n"
	issues := New().Scan(source)

	issue := findPattern(issues, "eval_usage")
	if issue == nil {
		t.Fatal("eval_usage not detected")
	}
	if issue.Line != 3 {
		t.Errorf("line = %d, want 3", issue.Line)
	}
	if issue.Column != 3 {
		t.Errorf("column = %d, want 3", issue.Column)
	}
}

func TestScanFirstLineColumn(t *testing.T) {
	issues := New().Scan("eval(x)")
	issue := findPattern(issues, "eval_usage")
	if issue == nil {
		t.Fatal("eval_usage not detected")
	}
	if issue.Line != 1 || issue.Column != 1 {
		t.Errorf("position = %d:%d, want 1:1", issue.Line, issue.Column)
	}
}

func TestScanMultipleMatches(t *testing.T) {
	source := "eval(a);\neval(b);\n"
	issues := New().Scan(source)

	count := 0
	for _, is := range issues {
		if is.CodePattern == "eval_usage" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 eval_usage issues, got %d", count)
	}
}

func TestScanEmpty(t *testing.T) {
	if issues := New().Scan(""); len(issues) != 0 {
		t.Errorf("empty input produced %d issues", len(issues))
	}
}

func TestQuickFixes(t *testing.T) {
	s := New()

	if is := findPattern(s.Scan("if (a == b) {}"), "loose_equality"); is == nil || is.QuickFix != "===" {
		t.Errorf("loose_equality quick fix missing or wrong: %+v", is)
	}
	if is := findPattern(s.Scan("el.innerHTML = x"), "inner_html_assignment"); is == nil || is.QuickFix != ".textContent =" {
		t.Errorf("inner_html quick fix missing or wrong: %+v", is)
	}
}
