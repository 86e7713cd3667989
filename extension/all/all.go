// Package all imports all built-in pngchunk extensions.
// Import this package to register all built-in commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/pngchunk/extension/chunk"
	_ "github.com/jpl-au/pngchunk/extension/core"
)
