package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/presagehq/presage/pkg/ast"
)

// lower converts a tree-sitter CST node into the generic AST. ERROR
// nodes lower to KindOther with their children preserved, so partial
// trees from malformed input still feed the traversal.
func lower(n *sitter.Node, src []byte) *ast.Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "program":
		return container(n, src, ast.KindProgram)

	case "function_declaration", "function_expression", "function",
		"generator_function_declaration", "generator_function",
		"method_definition", "arrow_function":
		return lowerFunction(n, src)

	case "lexical_declaration", "variable_declaration":
		return lowerDeclaration(n, src)

	case "variable_declarator":
		return lowerDeclarator(n, src)

	case "assignment_expression", "augmented_assignment_expression":
		return lowerAssignment(n, src)

	case "update_expression":
		return &ast.Node{
			Kind:     ast.KindUpdate,
			Name:     nodeText(n.ChildByFieldName("argument"), src),
			Operator: nodeText(n.ChildByFieldName("operator"), src),
			Line:     line(n),
			Column:   column(n),
		}

	case "if_statement", "ternary_expression":
		return lowerConditional(n, src)

	case "while_statement", "do_statement":
		return lowerWhile(n, src)

	case "for_statement":
		return lowerFor(n, src)

	case "for_in_statement":
		return lowerForIn(n, src)

	case "switch_statement":
		return container(n, src, ast.KindSwitch)

	case "call_expression":
		return lowerCall(n, src)

	case "member_expression":
		node := container(n, src, ast.KindOther)
		node.Name = nodeText(n.ChildByFieldName("property"), src)
		return node

	case "binary_expression":
		return lowerBinary(n, src)

	case "parenthesized_expression", "expression_statement":
		return lower(n.NamedChild(0), src)

	case "identifier":
		return &ast.Node{
			Kind:   ast.KindIdentifier,
			Name:   nodeText(n, src),
			Line:   line(n),
			Column: column(n),
		}

	case "true", "false", "null", "undefined", "number", "string",
		"template_string", "regex":
		return &ast.Node{
			Kind:   ast.KindLiteral,
			Value:  nodeText(n, src),
			Line:   line(n),
			Column: column(n),
		}

	case "return_statement":
		return container(n, src, ast.KindReturn)

	case "break_statement":
		return &ast.Node{Kind: ast.KindBreak, Line: line(n), Column: column(n)}

	case "statement_block", "class_body":
		return container(n, src, ast.KindBlock)

	case "comment":
		return nil

	default:
		// Covers ERROR nodes from tree-sitter's recovery mode along
		// with every construct the traversal has no opinion about.
		return container(n, src, ast.KindOther)
	}
}

// container lowers all named children under a node of the given kind.
func container(n *sitter.Node, src []byte, kind ast.Kind) *ast.Node {
	node := &ast.Node{Kind: kind, Line: line(n), Column: column(n)}
	node.Children = lowerChildren(n, src)
	return node
}

func lowerChildren(n *sitter.Node, src []byte) []*ast.Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	children := make([]*ast.Node, 0, count)
	for i := 0; i < count; i++ {
		if child := lower(n.NamedChild(i), src); child != nil {
			children = append(children, child)
		}
	}
	return children
}

func lowerFunction(n *sitter.Node, src []byte) *ast.Node {
	fn := &ast.Node{
		Kind:   ast.KindFunction,
		Name:   nodeText(n.ChildByFieldName("name"), src),
		Line:   line(n),
		Column: column(n),
		Params: lowerParams(n, src),
	}
	if body := lower(n.ChildByFieldName("body"), src); body != nil {
		fn.Body = body
		fn.Children = append(fn.Children, body)
	}
	return fn
}

// lowerParams collects parameter names. The typed dialect wraps each
// parameter in required_parameter/optional_parameter nodes; arrows may
// carry a single bare parameter instead of a list.
func lowerParams(n *sitter.Node, src []byte) []string {
	if single := n.ChildByFieldName("parameter"); single != nil {
		return []string{nodeText(single, src)}
	}
	list := n.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}
	var params []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		switch p.Type() {
		case "identifier", "rest_pattern", "object_pattern", "array_pattern":
			params = append(params, nodeText(p, src))
		case "required_parameter", "optional_parameter":
			if pattern := p.ChildByFieldName("pattern"); pattern != nil {
				params = append(params, nodeText(pattern, src))
			} else {
				params = append(params, nodeText(p, src))
			}
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil {
				params = append(params, nodeText(left, src))
			}
		default:
			params = append(params, nodeText(p, src))
		}
	}
	return params
}

// lowerDeclaration flattens let/const/var statements. A single
// declarator is returned directly so `let i = 0` lowers to one VarDecl.
func lowerDeclaration(n *sitter.Node, src []byte) *ast.Node {
	children := lowerChildren(n, src)
	if len(children) == 1 {
		return children[0]
	}
	return &ast.Node{Kind: ast.KindOther, Line: line(n), Column: column(n), Children: children}
}

func lowerDeclarator(n *sitter.Node, src []byte) *ast.Node {
	decl := &ast.Node{
		Kind:   ast.KindVarDecl,
		Name:   nodeText(n.ChildByFieldName("name"), src),
		Line:   line(n),
		Column: column(n),
	}
	if value := lower(n.ChildByFieldName("value"), src); value != nil {
		// Name anonymous functions after the variable they bind to.
		if value.Kind == ast.KindFunction && value.Name == "" {
			value.Name = decl.Name
		}
		decl.Children = append(decl.Children, value)
	}
	return decl
}

// lowerAssignment keeps the left-hand side as the node name rather than
// a child identifier, so the defining occurrence never registers as a
// use during dependency tracking.
func lowerAssignment(n *sitter.Node, src []byte) *ast.Node {
	op := "="
	if n.Type() == "augmented_assignment_expression" {
		op = nodeText(n.ChildByFieldName("operator"), src)
	}
	node := &ast.Node{
		Kind:     ast.KindAssign,
		Name:     strings.TrimSpace(nodeText(n.ChildByFieldName("left"), src)),
		Operator: op,
		Line:     line(n),
		Column:   column(n),
	}
	if right := lower(n.ChildByFieldName("right"), src); right != nil {
		node.Children = append(node.Children, right)
	}
	return node
}

func lowerConditional(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{Kind: ast.KindCondition, Line: line(n), Column: column(n)}
	if cond := lower(n.ChildByFieldName("condition"), src); cond != nil {
		node.Cond = cond
		node.Children = append(node.Children, cond)
	}
	if cons := lower(n.ChildByFieldName("consequence"), src); cons != nil {
		node.Children = append(node.Children, cons)
	}
	if alt := lower(n.ChildByFieldName("alternative"), src); alt != nil {
		node.Children = append(node.Children, alt)
	}
	return node
}

func lowerWhile(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{Kind: ast.KindWhileLoop, Line: line(n), Column: column(n)}
	if cond := lower(n.ChildByFieldName("condition"), src); cond != nil {
		node.Cond = cond
		node.Children = append(node.Children, cond)
	}
	if body := lower(n.ChildByFieldName("body"), src); body != nil {
		node.Body = body
		node.Children = append(node.Children, body)
	}
	return node
}

func lowerFor(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{Kind: ast.KindForLoop, Line: line(n), Column: column(n)}
	if init := lower(n.ChildByFieldName("initializer"), src); init != nil {
		node.Children = append(node.Children, init)
	}
	if cond := lower(n.ChildByFieldName("condition"), src); cond != nil {
		node.Cond = cond
		node.Children = append(node.Children, cond)
	}
	if inc := lower(n.ChildByFieldName("increment"), src); inc != nil {
		node.Update = inc
		node.Children = append(node.Children, inc)
	}
	if body := lower(n.ChildByFieldName("body"), src); body != nil {
		node.Body = body
		node.Children = append(node.Children, body)
	}
	return node
}

// lowerForIn covers for-in/for-of, whose iteration advances implicitly;
// the iterated expression stands in as the update clause so the
// missing-increment heuristic never fires on them.
func lowerForIn(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{Kind: ast.KindForLoop, Line: line(n), Column: column(n)}
	if right := lower(n.ChildByFieldName("right"), src); right != nil {
		node.Update = right
		node.Children = append(node.Children, right)
	}
	if body := lower(n.ChildByFieldName("body"), src); body != nil {
		node.Body = body
		node.Children = append(node.Children, body)
	}
	return node
}

func lowerCall(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{Kind: ast.KindCall, Line: line(n), Column: column(n)}
	callee := n.ChildByFieldName("function")
	if callee != nil {
		node.Value = nodeText(callee, src)
		switch callee.Type() {
		case "identifier":
			node.Name = node.Value
		case "member_expression":
			// obj.method() resolves to "method".
			node.Name = nodeText(callee.ChildByFieldName("property"), src)
			if obj := lower(callee.ChildByFieldName("object"), src); obj != nil {
				node.Children = append(node.Children, obj)
			}
		default:
			if lowered := lower(callee, src); lowered != nil {
				node.Children = append(node.Children, lowered)
			}
		}
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		node.Children = append(node.Children, lowerChildren(args, src)...)
	}
	return node
}

func lowerBinary(n *sitter.Node, src []byte) *ast.Node {
	node := &ast.Node{
		Kind:     ast.KindBinary,
		Operator: nodeText(n.ChildByFieldName("operator"), src),
		Line:     line(n),
		Column:   column(n),
	}
	if left := lower(n.ChildByFieldName("left"), src); left != nil {
		node.Children = append(node.Children, left)
	}
	if right := lower(n.ChildByFieldName("right"), src); right != nil {
		node.Children = append(node.Children, right)
	}
	return node
}

func line(n *sitter.Node) int   { return int(n.StartPoint().Row) + 1 }
func column(n *sitter.Node) int { return int(n.StartPoint().Column) + 1 }
