// Package chunk provides the chunk type extension for pngchunk.
// It registers commands: inspect, check, scan, and their MCP tools.
package chunk

import (
	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the chunk extension.
type Extension struct {
	cfg *config.Config
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "chunk".
func (e *Extension) Name() string { return "chunk" }

// Init stores the loaded config so flag defaults can follow it.
func (e *Extension) Init(ctx extension.Context) error {
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the inspect, check and scan commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newInspectCmd(),
		e.newCheckCmd(),
		e.newScanCmd(),
	}
}

// MCPTools returns the chunk type tools served by "pngchunk serve".
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		inspectTool(),
		checkTool(),
		scanTool(),
	}
}

// config returns the loaded config, or defaults when Init has not run.
func (e *Extension) config() *config.Config {
	if e.cfg == nil {
		return &config.Config{}
	}
	return e.cfg
}
