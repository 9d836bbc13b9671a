// Package parser converts source text into the generic AST consumed by
// the flow traversal. Languages from the curly-brace scripting family are
// parsed with tree-sitter; everything else degrades to a heuristic
// line-based pseudo-AST.
package parser

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/presagehq/presage/pkg/ast"
)

// Language is an editor-style language identifier.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJSX        Language = "javascriptreact"
	LangTSX        Language = "typescriptreact"
	LangPython     Language = "python"
	LangRuby       Language = "ruby"
	LangUnknown    Language = "unknown"
)

// HasGrammar reports whether a full tree-sitter grammar is bundled for
// the language. Languages without one take the pseudo-AST path.
func HasGrammar(lang Language) bool {
	return grammarFor(lang) != nil
}

// grammarFor returns the tree-sitter grammar for a language, or nil.
// The TSX grammar accepts both the typed dialect and JSX, so one mode
// covers the React variants of the family.
func grammarFor(lang Language) *sitter.Language {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage()
	case LangTypeScript:
		return typescript.GetLanguage()
	case LangJSX, LangTSX:
		return tsx.GetLanguage()
	default:
		return nil
	}
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".jsx":
		return LangJSX
	case ".ts", ".mts", ".cts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".py", ".pyw":
		return LangPython
	case ".rb":
		return LangRuby
	default:
		return LangUnknown
	}
}

// Parse converts source text into a generic AST. It never panics to the
// caller: grammar failures return nil, and languages without a grammar
// fall back to the pseudo-AST. Tree-sitter's error recovery means
// malformed input still yields a best-effort partial tree.
func Parse(text string, lang Language) (root *ast.Node) {
	defer func() {
		if recover() != nil {
			root = nil
		}
	}()

	grammar := grammarFor(lang)
	if grammar == nil {
		return BuildPseudo(text)
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(grammar)

	src := []byte(text)
	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	return lower(tree.RootNode(), src)
}

// nodeText extracts the source text for a tree-sitter node.
func nodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start > end || end > uint32(len(src)) {
		return ""
	}
	return string(src[start:end])
}
