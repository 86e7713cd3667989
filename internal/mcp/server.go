// Package mcp implements the Model Context Protocol server, exposing
// pngchunk operations to LLMs. Tools are contributed by extensions; this
// package owns the transport, the per-call config and the chunk type
// resources.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer()

	slog.Info("pngchunk MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every extension tool and the chunk
// type resources registered.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		"pngchunk",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s)
	registerTools(s, extension.Tools(), config.Load)
	return s
}

// registerTools adds extension tools, wrapping each handler so it receives
// freshly loaded config. Reloading per call means "pngchunk config" edits
// apply to a running server.
func registerTools(s *server.MCPServer, tools []extension.MCPTool, load func() (*config.Config, error)) {
	for _, t := range tools {
		s.AddTool(t.Tool, bind(t, load))
	}
}

// bind adapts an extension handler to the mcp-go handler signature.
func bind(t extension.MCPTool, load func() (*config.Config, error)) server.ToolHandlerFunc {
	name := t.Tool.Name
	h := t.Handler
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, err := load()
		if err != nil {
			slog.Error("config load failed", "tool", name, "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("config load: %v", err)), nil
		}
		return h(ctx, extension.NewContext(cfg), req)
	}
}
