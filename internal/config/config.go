// Package config provides reading and writing of pngchunk configuration.
// Supports both global (~/.pngchunk/config.yaml) and local (.pngchunk/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: goes back to wherever the config was read from; use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/pngchunk/chunktype"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the name of the configuration directory, both in the home
// directory and in a project.
const Dir = ".pngchunk"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.pngchunk/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .pngchunk/config.yaml
	ScopeLocal
)

// String returns "global" or "local".
func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// Author represents the attribution recorded in the audit log.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Check holds options for the check command.
type Check struct {
	RequireValid *bool `yaml:"require_valid,omitempty"`
}

// Scan holds options for the scan command.
type Scan struct {
	MaxChunks *int                  `yaml:"max_chunks,omitempty"`
	Ignore    []chunktype.ChunkType `yaml:"ignore,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultMaxChunks = 10000
)

// Validation bounds for configuration values.
const (
	MinMaxChunks = 1
	MaxMaxChunks = 1_000_000
)

// Config contains configuration for pngchunk.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Check  Check  `yaml:"check,omitempty"`
	Scan   Scan   `yaml:"scan,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
// Chunk types in scan.ignore are validated while decoding, not here.
func (c *Config) Validate() error {
	if c.Scan.MaxChunks != nil {
		return CheckMaxChunks(*c.Scan.MaxChunks)
	}
	return nil
}

// CheckMaxChunks reports whether n is an acceptable per-file chunk limit.
// Flags and tool parameters that override scan.max_chunks use it too.
func CheckMaxChunks(n int) error {
	if n < MinMaxChunks || n > MaxMaxChunks {
		return fmt.Errorf("%w: max_chunks must be between %d and %d, got %d",
			ErrInvalidValue, MinMaxChunks, MaxMaxChunks, n)
	}
	return nil
}

// RequireValid returns whether check and scan treat a broken reserved bit
// as a failure (defaults to false).
func (c *Config) RequireValid() bool {
	if c.Check.RequireValid == nil {
		return false
	}
	return *c.Check.RequireValid
}

// MaxChunks returns the per-file chunk listing limit (defaults to 10000).
func (c *Config) MaxChunks() int {
	if c.Scan.MaxChunks == nil {
		return DefaultMaxChunks
	}
	return *c.Scan.MaxChunks
}

// Ignore returns the chunk types scan leaves out of its output.
func (c *Config) Ignore() []chunktype.ChunkType {
	return c.Scan.Ignore
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.pngchunk/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct it, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
