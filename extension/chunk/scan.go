// scan.go implements the "pngchunk scan" command.
//
// Design: --ignore is merged with scan.ignore from config rather than
// replacing it, since the config list usually names noise (text chunks,
// tool metadata) that a one-off ignore should not bring back.

package chunk

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/cmd"
	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/config"
	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/jpl-au/pngchunk/internal/scan"
	"github.com/spf13/cobra"
)

func (e *Extension) newScanCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "scan <file|glob>...",
		Short: "List the chunks in PNG files",
		Long: `List every chunk in one or more PNG files with its offset, length,
type and property flags.

  pngchunk scan image.png
  pngchunk scan "assets/**/*.png" --ignore tEXt,zTXt
  pngchunk scan big.png --max-chunks 50`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runScan,
	}
	c.Flags().String(extension.FlagIgnore, "", "Comma-separated chunk types to leave out (added to scan.ignore)")
	c.Flags().Int(extension.FlagMaxChunks, 0, "Stop listing a file after this many chunks (default scan.max_chunks)")
	c.Flags().Bool(extension.FlagStrict, false, "Fail files containing a type whose reserved bit is not set (default check.require_valid)")
	return c
}

func (e *Extension) runScan(c *cobra.Command, args []string) error {
	cfg := e.config()

	opts, err := scanOptions(cfg, c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res, err := scan.Run(c.Context(), cmd.Writer(), args, opts)

	for _, f := range res.Files {
		ev := log.Event("chunk:scan", "scan").Author(cmd.Author()).Input(f.Path).
			Detail("chunks", len(f.Chunks)).Detail("ignored", f.Ignored)
		if f.Error != "" {
			ev.Write(errors.New(f.Error))
		} else {
			ev.Write(nil)
		}
	}

	if err != nil && !cmd.JSON() {
		c.SilenceUsage = true
	}
	return cmd.PrintJSONResult(res, err)
}

// scanOptions merges flags over config.
func scanOptions(cfg *config.Config, c *cobra.Command) (scan.Options, error) {
	opts := scan.Options{
		Ignore:    slices.Clone(cfg.Ignore()),
		MaxChunks: cfg.MaxChunks(),
	}

	if s, _ := c.Flags().GetString(extension.FlagIgnore); s != "" {
		extra, err := config.ParseTypes(s)
		if err != nil {
			return opts, fmt.Errorf("--%s: %w", extension.FlagIgnore, err)
		}
		opts.Ignore = mergeTypes(opts.Ignore, extra)
	}

	if c.Flags().Changed(extension.FlagMaxChunks) {
		n, _ := c.Flags().GetInt(extension.FlagMaxChunks)
		if err := config.CheckMaxChunks(n); err != nil {
			return opts, fmt.Errorf("--%s: %w", extension.FlagMaxChunks, err)
		}
		opts.MaxChunks = n
	}

	opts.RequireValid = cfg.RequireValid()
	if c.Flags().Changed(extension.FlagStrict) {
		opts.RequireValid, _ = c.Flags().GetBool(extension.FlagStrict)
	}
	return opts, nil
}

// mergeTypes appends the entries of extra not already in base.
func mergeTypes(base, extra []chunktype.ChunkType) []chunktype.ChunkType {
	for _, t := range extra {
		if !slices.Contains(base, t) {
			base = append(base, t)
		}
	}
	return base
}
