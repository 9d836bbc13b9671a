package models

// String methods for all custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// IssueType
func (t IssueType) String() string { return string(t) }

// Severity
func (s Severity) String() string { return string(s) }

// Priority
func (p Priority) String() string { return string(p) }

// FlowNodeType
func (f FlowNodeType) String() string { return string(f) }

// DependencyScope
func (d DependencyScope) String() string { return string(d) }
