// serve.go implements the "pngchunk serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: Serve is a configless command. The server reloads configuration
// for each tool call, so edits made with "pngchunk config" while a client
// is connected take effect without a restart.

package core

import (
	"github.com/jpl-au/pngchunk/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools: pngchunk_inspect, pngchunk_check, pngchunk_scan
Resources: pngchunk://types/{type}`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve()
}
