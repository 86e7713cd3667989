// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "scan.max_chunks").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/pngchunk/chunktype"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"check.require_valid",
		"scan.max_chunks", "scan.ignore",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "check.require_valid":
		return strconv.FormatBool(c.RequireValid()), nil
	case "scan.max_chunks":
		return strconv.Itoa(c.MaxChunks()), nil
	case "scan.ignore":
		return joinTypes(c.Scan.Ignore), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "check.require_valid":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: check.require_valid must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Check.RequireValid = &b
	case "scan.max_chunks":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxChunks || n > MaxMaxChunks {
			return fmt.Errorf("%w: scan.max_chunks must be an integer between %d and %d",
				ErrInvalidValue, MinMaxChunks, MaxMaxChunks)
		}
		c.Scan.MaxChunks = &n
	case "scan.ignore":
		types, err := ParseTypes(value)
		if err != nil {
			return fmt.Errorf("%w: scan.ignore: %w", ErrInvalidValue, err)
		}
		c.Scan.Ignore = types
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":         c.Author.Name,
		"check.require_valid": strconv.FormatBool(c.RequireValid()),
		"scan.max_chunks":     strconv.Itoa(c.MaxChunks()),
		"scan.ignore":         joinTypes(c.Scan.Ignore),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "check.require_valid":
		return c.Check.RequireValid != nil
	case "scan.max_chunks":
		return c.Scan.MaxChunks != nil
	case "scan.ignore":
		return len(c.Scan.Ignore) > 0
	default:
		return false
	}
}

// ParseTypes parses a comma-separated list of chunk types. Duplicates are
// dropped; an empty string yields an empty list.
func ParseTypes(s string) ([]chunktype.ChunkType, error) {
	var types []chunktype.ChunkType
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		ct, err := chunktype.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", f, err)
		}
		if !slices.Contains(types, ct) {
			types = append(types, ct)
		}
	}
	return types, nil
}

func joinTypes(types []chunktype.ChunkType) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = t.String()
	}
	return strings.Join(s, ",")
}
