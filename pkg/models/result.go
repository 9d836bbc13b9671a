package models

// Priority is the overall urgency of an analysis result.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Result is the aggregate output of one analysis run. It is produced
// fresh per call and never mutated after construction; the engine holds
// no reference to it once returned.
type Result struct {
	Issues           []Issue           `json:"issues" toon:"issues"`
	CodeFlow         []CodeFlowNode    `json:"code_flow" toon:"code_flow"`
	DataDependencies []DataDependency  `json:"data_dependencies" toon:"data_dependencies"`
	ControlFlowPaths []ControlFlowPath `json:"control_flow_paths" toon:"control_flow_paths"`
	Complexity       int               `json:"complexity" toon:"complexity"`
	Priority         Priority          `json:"priority" toon:"priority"`
}

// FileResult pairs a Result with the file it came from, for multi-file
// runs driven by the CLI or MCP server.
type FileResult struct {
	Path     string `json:"path" toon:"path"`
	Language string `json:"language" toon:"language"`
	Result   Result `json:"result" toon:"result"`
}
