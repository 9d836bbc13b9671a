// Package engine orchestrates one analysis run: parse, pattern-scan,
// traverse, aggregate. Every invocation is a pure function of the
// (text, language) pair; the engine holds no mutable state between
// calls and is safe for concurrent use.
package engine

import (
	"github.com/presagehq/presage/pkg/flow"
	"github.com/presagehq/presage/pkg/models"
	"github.com/presagehq/presage/pkg/parser"
	"github.com/presagehq/presage/pkg/patterns"
)

// Engine runs the full analysis pipeline.
type Engine struct {
	scanner  *patterns.Scanner
	walker   *flow.Walker
	patterns bool
	flow     bool
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithMaxParams sets the parameter-count threshold for the
// maintainability check.
func WithMaxParams(n int) Option {
	return func(e *Engine) {
		e.walker = flow.New(flow.WithMaxParams(n))
	}
}

// WithPatterns toggles the regex pattern scan stage.
func WithPatterns(enabled bool) Option {
	return func(e *Engine) {
		e.patterns = enabled
	}
}

// WithFlow toggles the parse-and-traverse stage.
func WithFlow(enabled bool) Option {
	return func(e *Engine) {
		e.flow = enabled
	}
}

// New creates an engine with default heuristics. Both stages are
// enabled unless an option disables them.
func New(opts ...Option) *Engine {
	e := &Engine{
		scanner:  patterns.New(),
		walker:   flow.New(),
		patterns: true,
		flow:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the pipeline end to end. The pattern scan runs against
// raw text regardless of parse success; the traversal only runs when an
// AST exists. There are no fatal failure modes: every error degrades to
// a smaller result set, never to a panic at the caller.
func (e *Engine) Analyze(text string, lang parser.Language) *models.Result {
	result := &models.Result{
		Issues:           []models.Issue{},
		CodeFlow:         []models.CodeFlowNode{},
		DataDependencies: []models.DataDependency{},
		ControlFlowPaths: []models.ControlFlowPath{},
		Priority:         models.PriorityLow,
	}
	if text == "" {
		return result
	}

	if e.patterns {
		result.Issues = append(result.Issues, e.scanner.Scan(text)...)
	}

	if e.flow {
		if root := parser.Parse(text, lang); root != nil {
			flowNodes, deps, issues := e.walker.Traverse(root)
			result.CodeFlow = flowNodes
			result.DataDependencies = deps
			result.Issues = append(result.Issues, issues...)
			result.ControlFlowPaths = flow.BuildPaths(flowNodes, issues)
		}
	}

	if result.CodeFlow == nil {
		result.CodeFlow = []models.CodeFlowNode{}
	}
	if result.DataDependencies == nil {
		result.DataDependencies = []models.DataDependency{}
	}

	result.Complexity = AggregateComplexity(result.CodeFlow, result.Issues)
	result.Priority = AggregatePriority(result.Issues)
	return result
}

// AnalyzeFile is a convenience for path-driven callers: the language is
// detected from the extension.
func (e *Engine) AnalyzeFile(path, text string) *models.FileResult {
	lang := parser.DetectLanguage(path)
	return &models.FileResult{
		Path:     path,
		Language: string(lang),
		Result:   *e.Analyze(text, lang),
	}
}
