package models

// FlowNodeType tags a node in the code-flow graph.
type FlowNodeType string

const (
	FlowFunction   FlowNodeType = "function"
	FlowCondition  FlowNodeType = "condition"
	FlowLoop       FlowNodeType = "loop"
	FlowAssignment FlowNodeType = "assignment"
	FlowCall       FlowNodeType = "call"
)

// CodeFlowNode is one tagged unit of the flow graph built during
// traversal. IDs are derived from name, line and emission order, so two
// runs over identical input produce identical graphs.
type CodeFlowNode struct {
	ID           string       `json:"id" toon:"id"`
	Type         FlowNodeType `json:"type" toon:"type"`
	Name         string       `json:"name" toon:"name"`
	Line         int          `json:"line" toon:"line"`
	Dependencies []string     `json:"dependencies" toon:"dependencies"`
	Affects      []string     `json:"affects" toon:"affects"`
	Complexity   int          `json:"complexity" toon:"complexity"`
}

// DependencyScope describes where a variable was bound.
type DependencyScope string

const (
	ScopeGlobal   DependencyScope = "global"
	ScopeFunction DependencyScope = "function"
	ScopeBlock    DependencyScope = "block"
)

// DataDependency is the per-variable record of definition, use and
// mutation sites. Entries are keyed by name, not by resolved binding:
// same-named variables in different scopes share one entry unless
// shadowing detection fires separately.
type DataDependency struct {
	Variable        string          `json:"variable" toon:"variable"`
	DefinedAt       []int           `json:"defined_at" toon:"defined_at"`
	UsedAt          []int           `json:"used_at" toon:"used_at"`
	MutatedAt       []int           `json:"mutated_at" toon:"mutated_at"`
	Scope           DependencyScope `json:"scope" toon:"scope"`
	PotentialIssues []string        `json:"potential_issues" toon:"potential_issues"`
}

// ControlFlowPath is a best-effort linear path through the flow graph.
// Population is partial: one path over top-level nodes per run.
type ControlFlowPath struct {
	Path              []CodeFlowNode `json:"path" toon:"path"`
	Conditions        []string       `json:"conditions" toon:"conditions"`
	Complexity        int            `json:"complexity" toon:"complexity"`
	PotentialDeadCode bool           `json:"potential_dead_code" toon:"potential_dead_code"`
	UnreachableCode   []int          `json:"unreachable_code" toon:"unreachable_code"`
}
