package flow

import (
	"fmt"

	"github.com/presagehq/presage/pkg/ast"
	"github.com/presagehq/presage/pkg/models"
)

// Loop flow nodes carry a fixed complexity of 2.
const loopComplexity = 2

func (t *traversal) visitWhile(n *ast.Node) {
	t.emitFlow(models.CodeFlowNode{
		Type:         models.FlowLoop,
		Name:         "while",
		Line:         n.Line,
		Dependencies: identifiersIn(n.Cond),
		Complexity:   loopComplexity,
	})
	t.checkWhileSafety(n)
}

func (t *traversal) visitFor(n *ast.Node) {
	t.emitFlow(models.CodeFlowNode{
		Type:         models.FlowLoop,
		Name:         "for",
		Line:         n.Line,
		Dependencies: identifiersIn(n.Cond),
		Complexity:   loopComplexity,
	})

	if n.Update == nil && !hasBreak(n.Body) {
		t.emitIssue(models.Issue{
			Type:        models.IssueBugRisk,
			Severity:    models.SeverityHigh,
			Message:     "for loop has no update clause and no break",
			Line:        n.Line,
			Column:      n.Column,
			Suggestion:  "Add an update expression or break out of the loop",
			Confidence:  0.85,
			CodePattern: "missing_for_increment",
		})
	}
}

// checkWhileSafety applies the loop-safety heuristic to while loops:
// unconditional loops need a break, and comparison-driven loops need
// their control variable advanced somewhere in the body.
func (t *traversal) checkWhileSafety(n *ast.Node) {
	breaks := hasBreak(n.Body)

	if isLiteralTrue(n.Cond) {
		if !breaks {
			t.emitIssue(models.Issue{
				Type:        models.IssueBugRisk,
				Severity:    models.SeverityCritical,
				Message:     "while (true) loop with no break",
				Line:        n.Line,
				Column:      n.Column,
				Suggestion:  "Add a break statement or a terminating condition",
				Confidence:  0.9,
				CodePattern: "infinite_loop",
			})
		}
		return
	}

	target := comparisonVariable(n.Cond)
	if target == "" {
		return
	}
	if !advancesVariable(n.Body, target) && !breaks {
		t.emitIssue(models.Issue{
			Type:        models.IssueBugRisk,
			Severity:    models.SeverityCritical,
			Message:     fmt.Sprintf("Loop condition depends on %q, which never changes in the body", target),
			Line:        n.Line,
			Column:      n.Column,
			Suggestion:  fmt.Sprintf("Increment or reassign %q inside the loop, or break out", target),
			Confidence:  0.85,
			CodePattern: "missing_loop_increment",
		})
	}
}

func isLiteralTrue(cond *ast.Node) bool {
	return cond != nil && cond.Kind == ast.KindLiteral && cond.Value == "true"
}

var comparisonOps = map[string]bool{
	"<": true, ">": true, "<=": true, ">=": true,
	"==": true, "!=": true, "===": true, "!==": true,
}

// comparisonVariable returns the bare-identifier operand of a binary
// comparison, preferring the left operand.
func comparisonVariable(cond *ast.Node) string {
	if cond == nil || cond.Kind != ast.KindBinary || !comparisonOps[cond.Operator] {
		return ""
	}
	for _, child := range cond.Children {
		if child.Kind == ast.KindIdentifier {
			return child.Name
		}
	}
	return ""
}

// advancesVariable reports whether the body contains an increment or
// decrement of the identifier, or an assignment whose left-hand side is
// the identifier.
func advancesVariable(body *ast.Node, name string) bool {
	if body == nil {
		return false
	}
	return ast.Contains(body, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindUpdate:
			return n.Name == name
		case ast.KindAssign:
			return n.Name == name
		}
		return false
	})
}

func hasBreak(body *ast.Node) bool {
	if body == nil {
		return false
	}
	return ast.ContainsKind(body, ast.KindBreak)
}
