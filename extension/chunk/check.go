// check.go implements the "pngchunk check" command.
//
// Design: --strict defaults to check.require_valid from config, so a
// project can make the reserved bit mandatory without every invocation
// repeating the flag. An explicit --strict=false still wins.

package chunk

import (
	"errors"

	"github.com/jpl-au/pngchunk/cmd"
	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/check"
	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check <type>...",
		Short: "Validate chunk type codes",
		Long: `Validate one or more chunk type codes. Exits 1 if any fails.

  pngchunk check IHDR tEXt
  pngchunk check --strict Rust     # fails: third letter is lowercase`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runCheck,
	}
	c.Flags().Bool(extension.FlagStrict, false, "Fail types whose reserved bit is not set (default check.require_valid)")
	return c
}

func (e *Extension) runCheck(c *cobra.Command, args []string) error {
	opts := check.Options{RequireValid: e.config().RequireValid()}
	if c.Flags().Changed(extension.FlagStrict) {
		opts.RequireValid, _ = c.Flags().GetBool(extension.FlagStrict)
	}

	res, err := check.Run(cmd.Writer(), args, opts)

	for _, item := range res.Items {
		ev := log.Event("chunk:check", "check").Author(cmd.Author()).Input(item.Input).Detail("strict", opts.RequireValid)
		if item.OK {
			ev.Type(item.Type).Write(nil)
		} else {
			ev.Detail("kind", item.Kind).Write(errors.New(item.Error))
		}
	}

	if err != nil && !cmd.JSON() {
		c.SilenceUsage = true
	}
	return cmd.PrintJSONResult(res, err)
}
