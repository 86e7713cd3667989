// Package extension provides the plugin architecture for pngchunk. Extensions
// bundle related functionality (commands, MCP tools) and register at init
// time, so new command groups can be added without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for pngchunk extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Configless is an optional interface for extensions with commands that
// must run without loading configuration. Commands returned by
// NoConfigCommands() skip initialisation in PersistentPreRunE.
//
// Use cases:
// 1. The config command itself, which must work when the file is malformed
// 2. Commands that manage their own lifecycle (serve)
// 3. Informational commands (version, guide)
type Configless interface {
	NoConfigCommands() []string
}
