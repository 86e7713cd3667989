// Package check validates a batch of chunk type inputs for the CLI and MCP
// layers.
//
// Each input is parsed independently so one bad entry does not hide the
// others. With Options.RequireValid, well-formed types that break the
// reserved-bit convention are reported as failures as well.
package check

import (
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/pngchunk/chunktype"
)

var (
	// ErrFailed is returned when at least one input did not pass.
	ErrFailed = errors.New("check failed")
	// ErrReservedBit marks a well-formed type rejected under RequireValid.
	ErrReservedBit = errors.New("reserved bit not set (third letter must be uppercase)")
)

// Options controls how strict a check is.
type Options struct {
	RequireValid bool
}

// Item is the outcome for one input.
type Item struct {
	Input string `json:"input"`
	OK    bool   `json:"ok"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// Result contains the outcome of a check run.
type Result struct {
	Items  []Item `json:"items"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
}

// One checks a single input.
func One(s string, opts Options) (chunktype.ChunkType, error) {
	c, err := chunktype.Parse(s)
	if err != nil {
		return chunktype.ChunkType{}, err
	}
	if opts.RequireValid && !c.IsValid() {
		return c, fmt.Errorf("%s: %w", c, ErrReservedBit)
	}
	return c, nil
}

// Run checks every input, writing one line per input to w.
// Returns ErrFailed (wrapped with the count) if any input failed.
func Run(w io.Writer, inputs []string, opts Options) (Result, error) {
	result := Result{Items: make([]Item, 0, len(inputs))}

	for _, in := range inputs {
		item := Item{Input: in}
		c, err := One(in, opts)
		if err != nil {
			item.Error = err.Error()
			item.Kind = kind(err)
			result.Failed++
			fmt.Fprintf(w, "FAIL  %q: %v\n", in, err)
		} else {
			item.OK = true
			item.Type = c.String()
			result.Passed++
			fmt.Fprintf(w, "ok    %s\n", c)
		}
		result.Items = append(result.Items, item)
	}

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d inputs", ErrFailed, result.Failed, len(inputs))
	}
	return result, nil
}

// kind names the rule an input violated, for machine-readable output.
func kind(err error) string {
	var de *chunktype.DecodeError
	switch {
	case errors.As(err, &de):
		return de.Kind.String()
	case errors.Is(err, ErrReservedBit):
		return "reserved bit"
	default:
		return ""
	}
}
