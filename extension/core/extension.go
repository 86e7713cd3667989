// Package core provides the core extension for pngchunk.
// It registers commands: config, serve, guide, log, version.
package core

import (
	"github.com/jpl-au/pngchunk/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Configless = (*Extension)(nil)
)

// Name returns "core" - this extension provides the housekeeping commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newLogCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - core commands have no MCP tool equivalents.
// MCP tools are provided by the chunk extension.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoConfigCommands returns commands that run without loading config.
// config: Must be able to repair a malformed config file.
// serve: Loads config itself for each tool call.
// guide, log, version: Never read config.
func (e *Extension) NoConfigCommands() []string {
	return []string{"config", "serve", "guide", "log", "version"}
}
