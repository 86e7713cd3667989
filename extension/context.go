// context.go defines the Context interface for extension access to pngchunk
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// Extensions receive Context during Init(), not at construction, because
// they register in init() before configuration has been loaded.

package extension

import (
	"github.com/jpl-au/pngchunk/internal/config"
)

// Context provides extensions controlled access to shared state.
type Context interface {
	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(cfg *config.Config) Context {
	return &extContext{cfg: cfg}
}

// Config returns the loaded user configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
