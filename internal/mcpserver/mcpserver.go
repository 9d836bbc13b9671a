// Package mcpserver exposes presage analysis as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all presage analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all presage tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "presage",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all presage tools to the server.
func (s *Server) registerTools() {
	// Full analysis of inline source
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_source",
		Description: describeAnalyzeSource(),
	}, handleAnalyzeSource)

	// Full analysis of files on disk
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_files",
		Description: describeAnalyzeFiles(),
	}, handleAnalyzeFiles)

	// Regex pattern scan only (no parse, no traversal)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_patterns",
		Description: describeScanPatterns(),
	}, handleScanPatterns)
}
