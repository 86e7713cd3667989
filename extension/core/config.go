// config.go implements the "pngchunk config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.pngchunk/config.yaml) takes precedence over global
// (~/.pngchunk/config.yaml). The --local flag forces use of local config
// even if it doesn't exist yet, so a project can pin its own settings.

package core

import (
	"fmt"
	"slices"

	"github.com/jpl-au/pngchunk/cmd"
	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/config"
	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/spf13/cobra"
)

// configResult is the JSON shape for config output.
type configResult struct {
	Scope    string            `json:"scope"`
	Values   map[string]string `json:"values"`
	Defaults []string          `json:"defaults,omitempty"`
}

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  pngchunk config                       # show config
  pngchunk config scan.max_chunks       # show scan.max_chunks value
  pngchunk config scan.ignore tEXt,zTXt # set scan.ignore

Keys:
  author.name          Attribution recorded in the audit log
  check.require_valid  Treat a lowercase third letter as a check failure
  scan.max_chunks      Per-file chunk listing limit (1-1000000)
  scan.ignore          Comma-separated chunk types to leave out of scans

Configuration locations:
  Global: ~/.pngchunk/config.yaml
  Local:  .pngchunk/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.pngchunk/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := cfg.Scope().String()
	author := cmd.Author()
	if author == "" {
		author = cfg.Author.Name
	}

	switch len(args) {
	case 0:
		// Show all values
		all := cfg.All()
		log.Event("core:config", "list").Author(author).Write(nil)
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var defaults []string
		for _, k := range keys {
			if !cfg.IsSet(k) {
				defaults = append(defaults, k)
			}
		}
		if cmd.JSON() {
			return cmd.PrintJSON(configResult{Scope: scopeName, Values: all, Defaults: defaults})
		}
		for _, k := range keys {
			if slices.Contains(defaults, k) {
				fmt.Fprintf(cmd.Out(), "%s: %s (default)\n", k, all[k])
				continue
			}
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		// Get single value
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(author).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(configResult{Scope: scopeName, Values: map[string]string{args[0]: v}})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(author).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Author(author).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}

		// Echo the normalised value, e.g. "text, ztxt" becomes "tEXt,zTXt"
		v, _ := cfg.Get(args[0])
		if cmd.JSON() {
			return cmd.PrintJSON(configResult{Scope: scopeName, Values: map[string]string{args[0]: v}})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], v, scopeName)
	}
	return nil
}
