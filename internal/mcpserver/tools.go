package mcpserver

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/presagehq/presage/internal/output"
	"github.com/presagehq/presage/internal/scanner"
	"github.com/presagehq/presage/pkg/engine"
	"github.com/presagehq/presage/pkg/models"
	"github.com/presagehq/presage/pkg/parser"
	"github.com/presagehq/presage/pkg/patterns"
)

// Tool input structures

// SourceInput carries inline source for analysis.
type SourceInput struct {
	Source   string `json:"source" jsonschema:"Source code to analyze."`
	Language string `json:"language,omitempty" jsonschema:"Language hint: javascript, typescript, javascriptreact, typescriptreact, python, or ruby. Defaults to javascript."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// FilesInput carries file or directory paths for analysis.
type FilesInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Files or directories to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// ScanInput carries inline source for a pattern-only scan.
type ScanInput struct {
	Source string `json:"source" jsonschema:"Source code to scan for risky text patterns."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// Helper functions

func getLanguage(hint string) parser.Language {
	switch hint {
	case "":
		return parser.LangJavaScript
	default:
		lang := parser.Language(hint)
		if !parser.HasGrammar(lang) && lang != parser.LangPython && lang != parser.LangRuby {
			return parser.LangUnknown
		}
		return lang
	}
}

func getFormat(format string) output.Format {
	if format == "json" {
		return output.FormatJSON
	}
	return output.FormatTOON
}

func formatOutput(data any, format output.Format) (string, error) {
	// TOON is the default for tool consumers; it is substantially more
	// token-efficient than JSON for tabular results.
	switch format {
	case output.FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleAnalyzeSource(ctx context.Context, req *mcp.CallToolRequest, input SourceInput) (*mcp.CallToolResult, any, error) {
	if input.Source == "" {
		return toolError("source is required")
	}
	lang := getLanguage(input.Language)
	if lang == parser.LangUnknown {
		return toolError("unsupported language: " + input.Language)
	}

	eng := engine.New()
	result := eng.Analyze(input.Source, lang)
	return toolResult(result, getFormat(input.Format))
}

func handleAnalyzeFiles(ctx context.Context, req *mcp.CallToolRequest, input FilesInput) (*mcp.CallToolResult, any, error) {
	paths := input.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := scanner.New(nil).ScanPaths(paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	eng := engine.New()
	results := make([]models.FileResult, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue // unreadable files are skipped, not fatal
		}
		results = append(results, *eng.AnalyzeFile(path, string(content)))
	}

	report := output.NewReport(results, false)
	return toolResult(report.RenderData(), getFormat(input.Format))
}

func handleScanPatterns(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, any, error) {
	if input.Source == "" {
		return toolError("source is required")
	}

	issues := patterns.New().Scan(input.Source)
	out := struct {
		Issues []models.Issue `json:"issues" toon:"issues"`
	}{issues}
	return toolResult(out, getFormat(input.Format))
}
