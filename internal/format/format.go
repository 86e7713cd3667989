// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// validation and scanning while this package handles presentation concerns
// like column alignment and flag rendering.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/png"
)

// FlagString renders the four property bits as a compact column, one
// character per byte position: C(ritical), P(ublic), R(eserved valid),
// S(afe to copy), or '-' when the bit is off.
func FlagString(f chunktype.Flags) string {
	b := []byte("----")
	if f.Critical {
		b[0] = 'C'
	}
	if f.Public {
		b[1] = 'P'
	}
	if f.ReservedBitValid {
		b[2] = 'R'
	}
	if f.SafeToCopy {
		b[3] = 'S'
	}
	return string(b)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// Detail prints every property of a single chunk type, one per line.
func Detail(w io.Writer, c chunktype.ChunkType) {
	b := c.Bytes()
	f := c.Flags()

	fmt.Fprintf(w, "type:         %s\n", c)
	fmt.Fprintf(w, "bytes:        %d %d %d %d\n", b[0], b[1], b[2], b[3])
	fmt.Fprintf(w, "hex:          %02X %02X %02X %02X\n", b[0], b[1], b[2], b[3])
	fmt.Fprintf(w, "critical:     %s\n", yesNo(f.Critical))
	fmt.Fprintf(w, "public:       %s\n", yesNo(f.Public))
	fmt.Fprintf(w, "reserved bit: %s\n", yesNo(f.ReservedBitValid))
	fmt.Fprintf(w, "safe to copy: %s\n", yesNo(f.SafeToCopy))
	fmt.Fprintf(w, "valid:        %s\n", yesNo(f.Valid))
	if d := chunktype.Describe(c); d != "" {
		fmt.Fprintf(w, "known:        %s\n", d)
	}
}

// Chunks prints chunk headers as an aligned table.
func Chunks(w io.Writer, hs []png.Header) {
	if len(hs) == 0 {
		return
	}

	// Width of the widest offset, minimum "OFFSET"
	width := len("OFFSET")
	for _, h := range hs {
		if n := len(strconv.FormatInt(h.Offset, 10)); n > width {
			width = n
		}
	}

	fmt.Fprintf(w, "%-*s  %10s  %-4s  %-5s  %s\n", width, "OFFSET", "LENGTH", "TYPE", "FLAGS", "DESCRIPTION")
	for _, h := range hs {
		fmt.Fprintf(w, "%-*d  %10d  %-4s  %-5s  %s\n",
			width, h.Offset, h.Length, h.Type, FlagString(h.Type.Flags()), chunktype.Describe(h.Type))
	}
}

// Heading prints a file name header used to separate multi-file output.
func Heading(w io.Writer, name string) {
	fmt.Fprintf(w, "%s\n%s\n", name, strings.Repeat("=", len(name)))
}
