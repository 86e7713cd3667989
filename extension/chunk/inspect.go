// inspect.go implements the "pngchunk inspect" command.

package chunk

import (
	"fmt"

	"github.com/jpl-au/pngchunk/cmd"
	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/inspect"
	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newInspectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "inspect <type>",
		Short: "Decode a chunk type and show its properties",
		Long: `Decode a 4-letter chunk type and show its byte values and property bits.

  pngchunk inspect RuSt
  pngchunk inspect --bytes "82,117,83,116"
  pngchunk inspect --bytes 52755374`,
		Args: cobra.ExactArgs(1),
		RunE: e.runInspect,
	}
	c.Flags().Bool(extension.FlagBytes, false, "Read the argument as four byte values")
	return c
}

func (e *Extension) runInspect(c *cobra.Command, args []string) error {
	asBytes, _ := c.Flags().GetBool(extension.FlagBytes)

	var (
		res inspect.Result
		err error
	)
	if asBytes {
		res, err = inspect.Bytes(cmd.Writer(), args[0])
	} else {
		res, err = inspect.Text(cmd.Writer(), args[0])
	}

	ev := log.Event("chunk:inspect", "inspect").Author(cmd.Author()).Input(args[0]).Detail("bytes", asBytes)
	if err != nil {
		ev.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("inspect %q: %w", args[0], err))
	}
	ev.Type(res.Type.String()).Write(nil)

	return cmd.PrintJSON(res)
}
