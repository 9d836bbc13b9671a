package flow

import "github.com/presagehq/presage/pkg/models"

// BuildPaths constructs the best-effort control-flow path set: one
// linear path over the emitted flow nodes. When an infinite-loop issue
// exists, nodes past the loop line are marked unreachable.
func BuildPaths(nodes []models.CodeFlowNode, issues []models.Issue) []models.ControlFlowPath {
	if len(nodes) == 0 {
		return []models.ControlFlowPath{}
	}

	path := models.ControlFlowPath{
		Path:            append([]models.CodeFlowNode(nil), nodes...),
		Conditions:      []string{},
		UnreachableCode: []int{},
	}

	for _, n := range nodes {
		path.Complexity += n.Complexity
		if n.Type == models.FlowCondition {
			path.Conditions = append(path.Conditions, n.Name)
		}
	}

	infiniteAt := -1
	for _, is := range issues {
		if is.CodePattern == "infinite_loop" {
			infiniteAt = is.Line
			break
		}
	}
	if infiniteAt >= 0 {
		path.PotentialDeadCode = true
		for _, n := range nodes {
			if n.Line > infiniteAt {
				path.UnreachableCode = append(path.UnreachableCode, n.Line)
			}
		}
	}

	return []models.ControlFlowPath{path}
}
