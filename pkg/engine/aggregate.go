package engine

import "github.com/presagehq/presage/pkg/models"

// AggregateComplexity combines flow-node complexity with severity
// weights: the flow sum plus 3 per critical, 2 per high and 1 per
// medium issue.
func AggregateComplexity(nodes []models.CodeFlowNode, issues []models.Issue) int {
	total := 0
	for _, n := range nodes {
		total += n.Complexity
	}
	counts := models.CountBySeverity(issues)
	total += 3 * counts[models.SeverityCritical]
	total += 2 * counts[models.SeverityHigh]
	total += counts[models.SeverityMedium]
	return total
}

// AggregatePriority derives the overall priority. The rules short-circuit
// in exactly this order: any critical issue wins; more than two high
// issues is high; one high or more than three medium issues is medium;
// everything else is low.
func AggregatePriority(issues []models.Issue) models.Priority {
	counts := models.CountBySeverity(issues)
	switch {
	case counts[models.SeverityCritical] > 0:
		return models.PriorityCritical
	case counts[models.SeverityHigh] > 2:
		return models.PriorityHigh
	case counts[models.SeverityHigh] >= 1 || counts[models.SeverityMedium] > 3:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
