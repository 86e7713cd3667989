// Package glob expands file patterns for the scan command.
//
// Extends filepath.Match with ** support for matching any path segments, so
// "images/**/*.png" finds PNGs at any depth below images/. Patterns are
// matched against slash-separated paths on every platform.
package glob

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// HasMeta reports whether pattern contains any glob metacharacters.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[`)
}

// Match reports whether p matches the glob pattern.
// Supports standard glob patterns (*, ?, [...]) plus ** for any number of
// path segments. Returns an error if the pattern is malformed.
func Match(pattern, p string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	p = filepath.ToSlash(p)

	if i := strings.Index(pattern, "**"); i >= 0 {
		prefix := strings.TrimSuffix(pattern[:i], "/")
		suffix := strings.TrimPrefix(pattern[i+2:], "/")

		if prefix != "" {
			if p != prefix && !strings.HasPrefix(p, prefix+"/") {
				return false, nil
			}
			p = strings.TrimPrefix(strings.TrimPrefix(p, prefix), "/")
		}
		if suffix == "" {
			return true, nil
		}

		// Try the suffix against every tail of the remaining segments
		segments := strings.Split(p, "/")
		for j := range segments {
			m, err := Match(suffix, strings.Join(segments[j:], "/"))
			if err != nil || m {
				return m, err
			}
		}
		return false, nil
	}

	return path.Match(pattern, p)
}

// Expand returns the files under fsys matching pattern, sorted.
// A pattern without metacharacters is returned as-is without touching the
// filesystem, so a missing file surfaces later as a normal open error.
func Expand(fsys fs.FS, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !HasMeta(pattern) {
		return []string{pattern}, nil
	}

	// Validate up front so a bad pattern fails even when nothing is walked
	if _, err := Match(pattern, ""); err != nil {
		return nil, err
	}

	var matches []string
	err := fs.WalkDir(fsys, root(pattern), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		m, err := Match(pattern, p)
		if err != nil {
			return err
		}
		if m {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// root returns the longest leading directory of pattern without
// metacharacters, or "." if the first segment already has one.
func root(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, s := range segments[:len(segments)-1] {
		if HasMeta(s) {
			break
		}
		static = append(static, s)
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}
