// log.go implements the "pngchunk log" command for reading the audit log.
//
// Separated from extension.go because it is the only command that reads
// the audit log rather than writing to it.

package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/pngchunk/cmd"
	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent audit log entries",
		Long: `Show the most recent operations recorded in the audit log.

The log lives at ~/.pngchunk/log/pngchunk-log.db and records every
inspect, check, scan and config operation, from the CLI and MCP server.`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Number of entries to show")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	if limit < 1 {
		return cmd.PrintJSONError(fmt.Errorf("--%s must be at least 1", extension.FlagLimit))
	}

	entries, err := log.Recent(limit)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read audit log: %w", err))
	}

	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}

	w := cmd.Out()
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAIL"
		}
		var parts []string
		if e.Input != "" {
			parts = append(parts, fmt.Sprintf("%q", e.Input))
		}
		if e.Type != "" {
			parts = append(parts, "-> "+e.Type)
		}
		if e.Error != "" {
			parts = append(parts, e.Error)
		}
		ts := time.Unix(e.Start, 0).Format(time.DateTime)
		fmt.Fprintf(w, "%s  %-4s  %-14s %-8s %s\n", ts, status, e.Source, e.Action, strings.Join(parts, " "))
	}
	return nil
}
