// Package flow performs the single-pass AST traversal that builds the
// code-flow graph, the per-variable data-dependency map and the
// structural issue detections. One walk carries all three accumulators,
// so detections can share scope context.
package flow

import (
	"fmt"

	"github.com/presagehq/presage/pkg/ast"
	"github.com/presagehq/presage/pkg/models"
)

// DefaultMaxParams is the parameter count above which a function is
// flagged as a maintainability smell.
const DefaultMaxParams = 5

// Walker traverses generic ASTs. Safe for concurrent use: all traversal
// state lives in the per-call accumulator.
type Walker struct {
	maxParams int
}

// Option is a functional option for configuring Walker.
type Option func(*Walker)

// WithMaxParams overrides the parameter-count threshold.
func WithMaxParams(n int) Option {
	return func(w *Walker) {
		if n > 0 {
			w.maxParams = n
		}
	}
}

// New creates a walker with default thresholds.
func New(opts ...Option) *Walker {
	w := &Walker{maxParams: DefaultMaxParams}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Traverse walks the tree depth-first, visiting every node once, and
// returns the flow graph, dependency map and inline issues. A panic
// inside one subtree is caught there; whatever was collected before the
// fault is still returned.
func (w *Walker) Traverse(root *ast.Node) ([]models.CodeFlowNode, []models.DataDependency, []models.Issue) {
	t := &traversal{
		maxParams: w.maxParams,
		deps:      make(map[string]*models.DataDependency),
		uses:      make(map[string][]int),
	}
	t.run(root)
	return t.finish()
}

// scopeFrame is one lexical scope: the program, a function body or a
// block.
type scopeFrame struct {
	kind  models.DependencyScope
	names map[string]bool
}

// frame is one entry of the explicit work stack. exit entries pop the
// scope that was opened when their node was entered.
type frame struct {
	node *ast.Node
	exit bool
}

type traversal struct {
	maxParams int

	flow     []models.CodeFlowNode
	issues   []models.Issue
	deps     map[string]*models.DataDependency
	depOrder []string
	uses     map[string][]int

	scopes []*scopeFrame
	seq    int
}

// run drives the explicit work stack. Recursion is deliberately avoided
// here so deeply nested trees cannot blow the call stack.
func (t *traversal) run(root *ast.Node) {
	if root == nil {
		return
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{node: root})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			t.popScope()
			continue
		}
		n := f.node
		if n == nil {
			continue
		}

		opened := t.enterScope(n)
		ok := t.safeVisit(n)
		if opened {
			stack = append(stack, frame{exit: true})
		}
		if !ok {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.Children[i]})
		}
	}
}

// safeVisit runs the visitor with per-subtree recovery. A faulting node
// keeps its partial results and prunes only its own subtree.
func (t *traversal) safeVisit(n *ast.Node) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	t.visit(n)
	return true
}

func (t *traversal) enterScope(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindProgram:
		t.pushScope(models.ScopeGlobal)
	case ast.KindFunction:
		t.pushScope(models.ScopeFunction)
		for _, p := range n.Params {
			t.currentScope().names[p] = true
		}
	case ast.KindBlock:
		t.pushScope(models.ScopeBlock)
	default:
		return false
	}
	return true
}

func (t *traversal) pushScope(kind models.DependencyScope) {
	t.scopes = append(t.scopes, &scopeFrame{kind: kind, names: make(map[string]bool)})
}

func (t *traversal) popScope() {
	if len(t.scopes) > 0 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

func (t *traversal) currentScope() *scopeFrame {
	if len(t.scopes) == 0 {
		// Orphan subtrees (no Program ancestor) still need a scope.
		t.pushScope(models.ScopeGlobal)
	}
	return t.scopes[len(t.scopes)-1]
}

// shadowedOutward reports whether any enclosing scope other than the
// current one already binds the name.
func (t *traversal) shadowedOutward(name string) bool {
	for i := 0; i < len(t.scopes)-1; i++ {
		if t.scopes[i].names[name] {
			return true
		}
	}
	return false
}

func (t *traversal) visit(n *ast.Node) {
	switch n.Kind {
	case ast.KindFunction:
		t.visitFunction(n)
	case ast.KindVarDecl:
		t.visitVarDecl(n)
	case ast.KindAssign:
		t.visitAssign(n)
	case ast.KindCondition:
		t.visitCondition(n)
	case ast.KindWhileLoop:
		t.visitWhile(n)
	case ast.KindForLoop:
		t.visitFor(n)
	case ast.KindCall:
		t.visitCall(n)
	case ast.KindIdentifier:
		t.uses[n.Name] = append(t.uses[n.Name], n.Line)
	}
}

func (t *traversal) visitFunction(n *ast.Node) {
	name := n.Name
	if name == "" {
		name = "(anonymous)"
	}

	t.emitFlow(models.CodeFlowNode{
		Type:         models.FlowFunction,
		Name:         name,
		Line:         n.Line,
		Dependencies: append([]string(nil), n.Params...),
		Complexity:   functionComplexity(n),
	})

	if len(n.Params) > t.maxParams {
		t.emitIssue(models.Issue{
			Type:        models.IssueMaintainability,
			Severity:    models.SeverityMedium,
			Message:     fmt.Sprintf("Function %q takes %d parameters", name, len(n.Params)),
			Line:        n.Line,
			Column:      n.Column,
			Suggestion:  "Group related parameters into an options object",
			Confidence:  0.8,
			CodePattern: "too_many_parameters",
		})
	}

	if n.Name != "" && t.recursesWithoutBaseCase(n) {
		t.emitIssue(models.Issue{
			Type:        models.IssueBugRisk,
			Severity:    models.SeverityHigh,
			Message:     fmt.Sprintf("Function %q calls itself without a clear base case", n.Name),
			Line:        n.Line,
			Column:      n.Column,
			Suggestion:  "Return a simple value for the terminating input before recursing",
			Confidence:  0.7,
			CodePattern: "recursion_no_base_case",
		})
	}
}

// recursesWithoutBaseCase checks the function body for a self call that
// is not accompanied by a simple literal return anywhere in the body.
func (t *traversal) recursesWithoutBaseCase(fn *ast.Node) bool {
	body := fn.Body
	if body == nil {
		return false
	}
	selfCall := ast.Contains(body, func(n *ast.Node) bool {
		return n.Kind == ast.KindCall && n.Name == fn.Name
	})
	if !selfCall {
		return false
	}
	baseCase := ast.Contains(body, func(n *ast.Node) bool {
		if n.Kind != ast.KindReturn {
			return false
		}
		if len(n.Children) == 0 {
			return true
		}
		return len(n.Children) == 1 && n.Children[0].Kind == ast.KindLiteral
	})
	return !baseCase
}

func (t *traversal) visitVarDecl(n *ast.Node) {
	if n.Name == "" {
		return
	}
	t.bind(n.Name, n.Line, n.Column, true)
}

func (t *traversal) visitAssign(n *ast.Node) {
	if n.Name == "" {
		return
	}
	if dep, ok := t.deps[n.Name]; ok {
		dep.MutatedAt = append(dep.MutatedAt, n.Line)
	} else {
		// In the pseudo-AST, `name = expr` is the binding form; the
		// first assignment doubles as the definition.
		t.bind(n.Name, n.Line, n.Column, false)
	}

	t.emitFlow(models.CodeFlowNode{
		Type:         models.FlowAssignment,
		Name:         n.Name,
		Line:         n.Line,
		Dependencies: identifiersIn(n),
		Affects:      []string{n.Name},
		Complexity:   1,
	})
}

// bind registers a DataDependency keyed by name and records the binding
// in the current scope, emitting a shadowing issue when an outer scope
// already binds the same name. Entries are name-keyed per run: a later
// same-named binding in a different scope extends the existing entry.
func (t *traversal) bind(name string, line, col int, isDecl bool) {
	if dep, ok := t.deps[name]; ok {
		dep.DefinedAt = append(dep.DefinedAt, line)
	} else {
		t.deps[name] = &models.DataDependency{
			Variable:        name,
			DefinedAt:       []int{line},
			UsedAt:          []int{},
			MutatedAt:       []int{},
			Scope:           t.currentScope().kind,
			PotentialIssues: []string{},
		}
		t.depOrder = append(t.depOrder, name)
	}

	if isDecl && t.shadowedOutward(name) && !t.currentScope().names[name] {
		t.emitIssue(models.Issue{
			Type:        models.IssueBugRisk,
			Severity:    models.SeverityMedium,
			Message:     fmt.Sprintf("Variable %q shadows a declaration in an outer scope", name),
			Line:        line,
			Column:      col,
			Suggestion:  "Rename the inner variable to avoid accidental shadowing",
			Confidence:  0.75,
			CodePattern: "variable_shadowing",
		})
		t.deps[name].PotentialIssues = append(t.deps[name].PotentialIssues,
			fmt.Sprintf("shadowed at line %d", line))
	}
	t.currentScope().names[name] = true
}

func (t *traversal) visitCondition(n *ast.Node) {
	t.emitFlow(models.CodeFlowNode{
		Type:         models.FlowCondition,
		Name:         "if",
		Line:         n.Line,
		Dependencies: identifiersIn(n.Cond),
		Complexity:   1,
	})

	if n.Cond != nil && n.Cond.Kind == ast.KindAssign {
		t.emitIssue(models.Issue{
			Type:        models.IssueLogicError,
			Severity:    models.SeverityHigh,
			Message:     fmt.Sprintf("Assignment to %q used as a condition", n.Cond.Name),
			Line:        n.Cond.Line,
			Column:      n.Cond.Column,
			Suggestion:  "Use a comparison operator; assignment in a condition is almost always a typo",
			Confidence:  0.95,
			CodePattern: "assignment_in_condition",
			QuickFix:    "===",
		})
	}
}

func (t *traversal) visitCall(n *ast.Node) {
	name := n.Name
	if name == "" {
		name = n.Value
	}
	t.emitFlow(models.CodeFlowNode{
		Type:         models.FlowCall,
		Name:         name,
		Line:         n.Line,
		Dependencies: identifiersIn(n),
		Complexity:   1,
	})

	if isConsoleCall(n) {
		t.emitIssue(models.Issue{
			Type:        models.IssueMaintainability,
			Severity:    models.SeverityLow,
			Message:     fmt.Sprintf("Logging call %q left in source", n.Value),
			Line:        n.Line,
			Column:      n.Column,
			Suggestion:  "Remove debug logging or route it through a logger",
			Confidence:  0.6,
			CodePattern: "console_logging",
		})
	}
}

func (t *traversal) emitFlow(node models.CodeFlowNode) {
	t.seq++
	node.ID = fmt.Sprintf("%s:%d:%d", node.Name, node.Line, t.seq)
	if node.Dependencies == nil {
		node.Dependencies = []string{}
	}
	if node.Affects == nil {
		node.Affects = []string{}
	}
	t.flow = append(t.flow, node)
}

func (t *traversal) emitIssue(issue models.Issue) {
	t.issues = append(t.issues, issue)
}

// finish materializes the dependency map in first-binding order and
// merges the identifier sightings recorded during the walk into each
// entry's use list.
func (t *traversal) finish() ([]models.CodeFlowNode, []models.DataDependency, []models.Issue) {
	deps := make([]models.DataDependency, 0, len(t.depOrder))
	for _, name := range t.depOrder {
		dep := t.deps[name]
		if lines, ok := t.uses[name]; ok {
			dep.UsedAt = append(dep.UsedAt, lines...)
		}
		deps = append(deps, *dep)
	}
	return t.flow, deps, t.issues
}

// functionComplexity approximates cyclomatic complexity: 1 plus one per
// conditional (if or ternary), two per loop and one per switch in the
// subtree.
func functionComplexity(fn *ast.Node) int {
	complexity := 1
	ast.Walk(fn, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindCondition:
			complexity++
		case ast.KindWhileLoop, ast.KindForLoop:
			complexity += 2
		case ast.KindSwitch:
			complexity++
		}
		return true
	})
	return complexity
}

// identifiersIn collects distinct identifier names in a subtree,
// preserving first-seen order.
func identifiersIn(root *ast.Node) []string {
	if root == nil {
		return []string{}
	}
	seen := make(map[string]bool)
	names := []string{}
	ast.Walk(root, func(n *ast.Node) bool {
		if n.Kind == ast.KindIdentifier && n.Name != "" && !seen[n.Name] {
			seen[n.Name] = true
			names = append(names, n.Name)
		}
		return true
	})
	return names
}

// isConsoleCall recognizes console-style logging callees, including the
// bare print/puts forms produced for pseudo-AST languages.
func isConsoleCall(n *ast.Node) bool {
	switch {
	case len(n.Value) > 8 && n.Value[:8] == "console.":
		return true
	case n.Name == "print" || n.Name == "puts":
		return true
	}
	return false
}
