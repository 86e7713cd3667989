// mcp.go implements the MCP tools for the chunk extension.
//
// Each tool mirrors its CLI command with -o json: the same internal package
// does the work and the same result struct is returned. Human-readable
// output goes to io.Discard.
//
// Design: A failed check or scan is still a successful tool call. The
// result carries per-item errors, which an LLM needs in full, so only bad
// parameters produce a tool error.

package chunk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/jpl-au/pngchunk/extension"
	"github.com/jpl-au/pngchunk/internal/check"
	"github.com/jpl-au/pngchunk/internal/config"
	"github.com/jpl-au/pngchunk/internal/inspect"
	"github.com/jpl-au/pngchunk/internal/log"
	"github.com/jpl-au/pngchunk/internal/scan"
	"github.com/mark3labs/mcp-go/mcp"
)

func inspectTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("pngchunk_inspect",
			mcp.WithDescription("Decode a PNG chunk type code and report its byte values and property bits (critical, public, reserved bit valid, safe to copy)."),
			mcp.WithString("type", mcp.Description("4-letter chunk type, e.g. \"tEXt\"")),
			mcp.WithString("bytes", mcp.Description("Alternative to type: four byte values, e.g. \"82,117,83,116\" or \"52755374\"")),
		),
		Handler: handleInspect,
	}
}

func checkTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("pngchunk_check",
			mcp.WithDescription("Validate PNG chunk type codes. Returns one item per input with ok, error and kind."),
			mcp.WithArray("types", mcp.Required(), mcp.Description("Chunk type codes to validate"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithBoolean("strict", mcp.Description("Also fail types whose third letter is lowercase (default: check.require_valid)")),
		),
		Handler: handleCheck,
	}
}

func scanTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("pngchunk_scan",
			mcp.WithDescription("List the chunks in PNG files: offset, length, type and property flags."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path or glob pattern (supports **)")),
			mcp.WithArray("ignore", mcp.Description("Chunk types to leave out, added to scan.ignore"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithNumber("max_chunks", mcp.Description("Stop listing a file after this many chunks (default: scan.max_chunks)")),
			mcp.WithBoolean("strict", mcp.Description("Fail files containing a type whose reserved bit is not set (default: check.require_valid)")),
		),
		Handler: handleScan,
	}
}

// toolConfig returns the caller's config, or defaults if none was supplied.
func toolConfig(extCtx extension.Context) *config.Config {
	if extCtx == nil || extCtx.Config() == nil {
		return &config.Config{}
	}
	return extCtx.Config()
}

func handleInspect(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := getString(req, "type", "")
	raw := getString(req, "bytes", "")

	var (
		res inspect.Result
		err error
	)
	switch {
	case text != "" && raw != "":
		return mcp.NewToolResultError("provide either type or bytes, not both"), nil
	case text != "":
		res, err = inspect.Text(io.Discard, text)
	case raw != "":
		res, err = inspect.Bytes(io.Discard, raw)
	default:
		return mcp.NewToolResultError("type or bytes is required"), nil
	}

	ev := log.Event("mcp:inspect", "inspect").Author("mcp").Input(text+raw).Detail("bytes", raw != "")
	if err != nil {
		ev.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev.Type(res.Type.String()).Write(nil)

	return jsonResult(res)
}

func handleCheck(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types := getStrings(req, "types")
	if len(types) == 0 {
		return mcp.NewToolResultError("types is required"), nil
	}

	strict := getBool(req, "strict", toolConfig(extCtx).RequireValid())
	res, err := check.Run(io.Discard, types, check.Options{RequireValid: strict})
	if err != nil && !errors.Is(err, check.ErrFailed) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	for _, item := range res.Items {
		ev := log.Event("mcp:check", "check").Author("mcp").Input(item.Input).Detail("strict", strict)
		if item.OK {
			ev.Type(item.Type).Write(nil)
		} else {
			ev.Detail("kind", item.Kind).Write(errors.New(item.Error))
		}
	}

	return jsonResult(res)
}

func handleScan(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	cfg := toolConfig(extCtx)
	maxChunks, err := getInt(req, "max_chunks", cfg.MaxChunks())
	if err == nil {
		err = config.CheckMaxChunks(maxChunks)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	opts := scan.Options{
		Ignore:    slices.Clone(cfg.Ignore()),
		MaxChunks: maxChunks,
	}
	opts.RequireValid = getBool(req, "strict", cfg.RequireValid())
	for _, s := range getStrings(req, "ignore") {
		extra, err := config.ParseTypes(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("ignore: %v", err)), nil
		}
		opts.Ignore = mergeTypes(opts.Ignore, extra)
	}

	res, err := scan.Run(ctx, io.Discard, []string{p}, opts)
	if err != nil && !errors.Is(err, scan.ErrFailed) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	for _, f := range res.Files {
		ev := log.Event("mcp:scan", "scan").Author("mcp").Input(f.Path).
			Detail("chunks", len(f.Chunks)).Detail("ignored", f.Ignored)
		if f.Error != "" {
			ev.Write(errors.New(f.Error))
		} else {
			ev.Write(nil)
		}
	}

	return jsonResult(res)
}
