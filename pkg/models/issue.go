package models

// IssueType categorizes a proactive issue.
type IssueType string

const (
	IssueBugRisk         IssueType = "bug_risk"
	IssuePerformance     IssueType = "performance"
	IssueSecurity        IssueType = "security"
	IssueMaintainability IssueType = "maintainability"
	IssueLogicError      IssueType = "logic_error"
)

// Severity represents how urgent an issue is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Weight returns a numeric weight for sorting (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Issue is a single detected problem. Issues are value objects; several
// may reference the same line.
type Issue struct {
	Type        IssueType `json:"type" toon:"type"`
	Severity    Severity  `json:"severity" toon:"severity"`
	Message     string    `json:"message" toon:"message"`
	Line        int       `json:"line" toon:"line"`
	Column      int       `json:"column" toon:"column"`
	Suggestion  string    `json:"suggestion" toon:"suggestion"`
	Confidence  float64   `json:"confidence" toon:"confidence"`
	CodePattern string    `json:"code_pattern" toon:"code_pattern"`
	QuickFix    string    `json:"quick_fix,omitempty" toon:"quick_fix,omitempty"`
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, is := range issues {
		counts[is.Severity]++
	}
	return counts
}
