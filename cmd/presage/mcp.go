package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/presagehq/presage/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes presage's
analysis as tools that LLMs can invoke. This lets AI assistants check
code for latent bugs before it lands.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "presage": {
        "command": "presage",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_source   Full pipeline on inline source
  - analyze_files    Full pipeline on files or directories
  - scan_patterns    Pattern-only text scan`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
