// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes owner listing and resolution as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `core-savior MCP server: lists documented API owners of a Go module and resolves them into documents.

Owners are interfaces, types annotated @controller or @api, and types with at least one @router method.
resolve_owner renders markdown by default; json, yaml and postman are also available.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, version string) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "core-savior", Version: version},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_owners",
		Description: "List the API owners of a Go module: interfaces, @controller/@api types and types with @router methods. Use owners to filter by name globs.",
	}, handleListOwners)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_owner",
		Description: "Resolve every documentable method of one owner into parameter and result trees and render them. Format is markdown (default), json, yaml or postman. Hidden methods are skipped unless include_hidden is set.",
	}, handleResolveOwner)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
