// Package ast defines the generic syntax tree shared by every analyzer.
//
// The tree is a closed tagged-variant: each Node carries a Kind plus the
// handful of fields that kind uses. Parsers for different languages all
// lower into this shape, so the flow traversal never needs to know which
// grammar produced a tree.
package ast

// Kind tags a Node with its syntactic role.
type Kind int

const (
	KindProgram Kind = iota
	KindFunction
	KindVarDecl
	KindAssign
	KindCondition
	KindWhileLoop
	KindForLoop
	KindSwitch
	KindCall
	KindIdentifier
	KindBinary
	KindUpdate
	KindLiteral
	KindReturn
	KindBreak
	KindBlock
	KindOther
)

var kindNames = map[Kind]string{
	KindProgram:    "program",
	KindFunction:   "function",
	KindVarDecl:    "var_decl",
	KindAssign:     "assign",
	KindCondition:  "condition",
	KindWhileLoop:  "while_loop",
	KindForLoop:    "for_loop",
	KindSwitch:     "switch",
	KindCall:       "call",
	KindIdentifier: "identifier",
	KindBinary:     "binary",
	KindUpdate:     "update",
	KindLiteral:    "literal",
	KindReturn:     "return",
	KindBreak:      "break",
	KindBlock:      "block",
	KindOther:      "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one vertex of the generic tree. A node owns its children; no
// back-references exist, so subtrees can be searched independently.
//
// Field usage by kind:
//   - Function: Name, Params, Body
//   - VarDecl: Name (bound identifier; initializer is a child)
//   - Assign: Name (left-hand side), Operator
//   - Condition: Cond (test expression)
//   - WhileLoop: Cond, Body
//   - ForLoop: Cond, Update (nil when the loop has no update clause), Body
//   - Call: Name (resolved callee), Value (full callee text, e.g. "console.log")
//   - Identifier: Name
//   - Binary/Update: Operator, Name (Update target)
//   - Literal: Value
//
// Cond, Update and Body always reference elements of Children, so a walk
// over Children visits every node exactly once.
type Node struct {
	Kind     Kind
	Name     string
	Operator string
	Value    string
	Line     int // 1-based
	Column   int // 1-based
	Params   []string

	Cond   *Node
	Update *Node
	Body   *Node

	Children []*Node
}

// Visitor is called for every node reached by Walk. Returning false
// prunes the node's subtree.
type Visitor func(n *Node) bool

// Walk traverses the tree depth-first, left to right. It uses an explicit
// work stack so pathologically nested trees cannot exhaust the call stack.
func Walk(root *Node, visit Visitor) {
	if root == nil {
		return
	}
	stack := make([]*Node, 0, 64)
	stack = append(stack, root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if !visit(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Find returns all nodes in the subtree matching the predicate.
func Find(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Contains reports whether any node in the subtree matches the predicate.
func Contains(root *Node, pred func(*Node) bool) bool {
	found := false
	Walk(root, func(n *Node) bool {
		if found {
			return false
		}
		if pred(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ContainsKind reports whether the subtree holds a node of the given kind.
func ContainsKind(root *Node, kind Kind) bool {
	return Contains(root, func(n *Node) bool { return n.Kind == kind })
}

// CountKind counts nodes of the given kind in the subtree, root included.
func CountKind(root *Node, kind Kind) int {
	count := 0
	Walk(root, func(n *Node) bool {
		if n.Kind == kind {
			count++
		}
		return true
	})
	return count
}
