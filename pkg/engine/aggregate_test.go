package engine

import (
	"testing"

	"github.com/presagehq/presage/pkg/models"
)

func issuesOf(severities ...models.Severity) []models.Issue {
	out := make([]models.Issue, len(severities))
	for i, s := range severities {
		out[i] = models.Issue{Severity: s}
	}
	return out
}

func TestAggregateComplexity(t *testing.T) {
	nodes := []models.CodeFlowNode{
		{Complexity: 3},
		{Complexity: 2},
	}
	issues := issuesOf(
		models.SeverityCritical, // +3
		models.SeverityHigh,     // +2
		models.SeverityMedium,   // +1
		models.SeverityLow,      // +0
	)

	if got := AggregateComplexity(nodes, issues); got != 11 {
		t.Errorf("AggregateComplexity = %d, want 11", got)
	}
}

func TestAggregateComplexityEmpty(t *testing.T) {
	if got := AggregateComplexity(nil, nil); got != 0 {
		t.Errorf("AggregateComplexity(nil, nil) = %d, want 0", got)
	}
}

func TestAggregatePriority(t *testing.T) {
	tests := []struct {
		name   string
		issues []models.Issue
		want   models.Priority
	}{
		{"no issues", nil, models.PriorityLow},
		{"one low", issuesOf(models.SeverityLow), models.PriorityLow},
		{"one medium", issuesOf(models.SeverityMedium), models.PriorityLow},
		{"three medium", issuesOf(models.SeverityMedium, models.SeverityMedium, models.SeverityMedium), models.PriorityLow},
		{"four medium", issuesOf(models.SeverityMedium, models.SeverityMedium, models.SeverityMedium, models.SeverityMedium), models.PriorityMedium},
		{"one high", issuesOf(models.SeverityHigh), models.PriorityMedium},
		{"two high", issuesOf(models.SeverityHigh, models.SeverityHigh), models.PriorityMedium},
		{"three high", issuesOf(models.SeverityHigh, models.SeverityHigh, models.SeverityHigh), models.PriorityHigh},
		{"critical wins", issuesOf(models.SeverityLow, models.SeverityCritical), models.PriorityCritical},
		{"critical over many high", issuesOf(models.SeverityHigh, models.SeverityHigh, models.SeverityHigh, models.SeverityCritical), models.PriorityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregatePriority(tt.issues); got != tt.want {
				t.Errorf("AggregatePriority = %s, want %s", got, tt.want)
			}
		})
	}
}
