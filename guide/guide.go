// Package guide provides access to embedded help and guide pages used by
// the CLI's built-in documentation system.
package guide

import (
	"embed"
	"strings"
)

//go:embed *.md
var files embed.FS

// Name resolves a page name, mapping "" to the default "guide" page.
func Name(name string) string {
	if name == "" {
		return "guide"
	}
	return strings.ToLower(name)
}

// Get returns the content of a guide page by name. If `name` is empty
// the default "guide" page is returned.
func Get(name string) (string, error) {
	data, err := files.ReadFile(Name(name) + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the available topic page names (without the .md suffix).
// The default page is not listed.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if name != "guide.md" {
			names = append(names, strings.TrimSuffix(name, ".md"))
		}
	}
	return names, nil
}
