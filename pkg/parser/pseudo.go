package parser

import (
	"regexp"
	"strings"

	"github.com/presagehq/presage/pkg/ast"
)

var (
	pseudoFuncRe   = regexp.MustCompile(`^\s*def\s+([A-Za-z_]\w*)\s*\(([^)]*)\)`)
	pseudoAssignRe = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*=\s*(\S.*)$`)
)

// BuildPseudo builds the heuristic line-based pseudo-AST for languages
// without a bundled grammar. Each line is pattern-matched for
// `def name(params)` function headers and `name = expr` assignments,
// producing flat nodes with no nested children. Intentionally crude:
// callers must not assume grammatical accuracy for these languages.
func BuildPseudo(text string) *ast.Node {
	root := &ast.Node{Kind: ast.KindProgram, Line: 1, Column: 1}

	for i, lineText := range strings.Split(text, "\n") {
		if m := pseudoFuncRe.FindStringSubmatch(lineText); m != nil {
			root.Children = append(root.Children, &ast.Node{
				Kind:   ast.KindFunction,
				Name:   m[1],
				Line:   i + 1,
				Column: 1,
				Params: splitParams(m[2]),
			})
			continue
		}
		if m := pseudoAssignRe.FindStringSubmatch(lineText); m != nil {
			// `x == y` comparisons slip past the first `=`; skip them.
			if strings.HasPrefix(m[2], "=") {
				continue
			}
			root.Children = append(root.Children, &ast.Node{
				Kind:     ast.KindAssign,
				Name:     m[1],
				Operator: "=",
				Line:     i + 1,
				Column:   1,
			})
		}
	}

	return root
}

func splitParams(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	params := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		// Drop default values and type annotations.
		if idx := strings.IndexAny(p, "=:"); idx >= 0 {
			p = strings.TrimSpace(p[:idx])
		}
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}
