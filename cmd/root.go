/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE loads configuration lazily - only commands that
// need it trigger extension init. This lets the config command repair a
// malformed config file, and keeps version/guide independent of any file on
// disk. The noConfigCommands map controls which commands skip initialisation.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pngchunk",
	Short: "Validate and inspect PNG chunk type codes",
	Long: `Validate 4-byte PNG chunk type codes, decode their property bits, and list the
chunk types found in PNG files.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		cmdName := topLevelCmdName(cmd)
		if noConfigCommands[cmdName] {
			return nil
		}

		if err := initExtensions(); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return fmt.Errorf("initialise extensions: %w", err)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = extContext.Config().Author.Name
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "pngchunk inspect RuSt", returns "inspect".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, and executes the command.
// Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	if wd, err := os.Getwd(); err == nil {
		log.SetProject(wd)
	}

	// Ctrl-C cancels a long scan between files instead of killing the
	// process mid-write to the audit log
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	registerExtensions()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}
