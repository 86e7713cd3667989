// Package inspect reports the properties of a single chunk type for the CLI
// and MCP layers.
//
// Two input forms are accepted: the 4-character text form ("RuSt"), and a
// list of byte values ("82,117,83,116", "0x52 0x75 0x53 0x74" or the packed
// hex "52755374") for types lifted out of a hex dump.
package inspect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/format"
)

// ErrInvalidInput is returned when a byte list entry is not a number in 0-255.
var ErrInvalidInput = errors.New("invalid byte list")

// Result contains the outcome of an inspection.
type Result struct {
	Input string              `json:"input"`
	Type  chunktype.ChunkType `json:"type"`
	Bytes []int               `json:"bytes"`
	Flags chunktype.Flags     `json:"flags"`
	Known string              `json:"known,omitempty"`
}

func newResult(input string, c chunktype.ChunkType) Result {
	b := c.Bytes()
	return Result{
		Input: input,
		Type:  c,
		Bytes: []int{int(b[0]), int(b[1]), int(b[2]), int(b[3])},
		Flags: c.Flags(),
		Known: chunktype.Describe(c),
	}
}

// Text inspects a chunk type given in its 4-character form.
func Text(w io.Writer, s string) (Result, error) {
	c, err := chunktype.Parse(s)
	if err != nil {
		return Result{Input: s}, err
	}
	format.Detail(w, c)
	return newResult(s, c), nil
}

// Bytes inspects a chunk type given as a list of byte values.
func Bytes(w io.Writer, s string) (Result, error) {
	b, err := ParseByteList(s)
	if err != nil {
		return Result{Input: s}, err
	}
	c, err := chunktype.FromBytes(b)
	if err != nil {
		return Result{Input: s}, err
	}
	format.Detail(w, c)
	return newResult(s, c), nil
}

// ParseByteList parses exactly four byte values.
//
// Entries are separated by commas or whitespace and may be decimal or carry
// a 0x/0o/0b prefix. A single 8-digit hex run with no separators is read as
// packed hex. A list with the wrong number of entries is reported as a
// chunktype.ErrInvalidLength error carrying the count.
func ParseByteList(s string) ([chunktype.Size]byte, error) {
	var out [chunktype.Size]byte

	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	if len(fields) == 1 && len(fields[0]) == 2*chunktype.Size {
		if b, err := hex.DecodeString(fields[0]); err == nil {
			copy(out[:], b)
			return out, nil
		}
	}

	if len(fields) != chunktype.Size {
		return out, &chunktype.DecodeError{Kind: chunktype.KindInvalidLength, Length: len(fields)}
	}

	for i, f := range fields {
		n, err := strconv.ParseUint(f, 0, 8)
		if err != nil {
			return out, fmt.Errorf("%w: entry %d %q is not a byte value", ErrInvalidInput, i, f)
		}
		out[i] = byte(n)
	}
	return out, nil
}
