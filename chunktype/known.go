// known.go lists the chunk types registered in the PNG standard.
//
// Design: The table is informational - it lets tools print a description
// next to a chunk type. Nothing in this package consults it when validating,
// and an unknown chunk type is as valid as a known one.

package chunktype

import (
	"bytes"
	"slices"
)

// Critical chunk types every PNG decoder must understand.
var (
	IHDR = MustParse("IHDR")
	PLTE = MustParse("PLTE")
	IDAT = MustParse("IDAT")
	IEND = MustParse("IEND")
)

var known = map[ChunkType]string{
	IHDR:              "image header",
	PLTE:              "palette",
	IDAT:              "image data",
	IEND:              "image trailer",
	MustParse("acTL"): "animation control",
	MustParse("bKGD"): "background colour",
	MustParse("cHRM"): "primary chromaticities",
	MustParse("cICP"): "coding-independent code points",
	MustParse("eXIf"): "exchangeable image file profile",
	MustParse("fcTL"): "frame control",
	MustParse("fdAT"): "frame data",
	MustParse("gAMA"): "image gamma",
	MustParse("hIST"): "image histogram",
	MustParse("iCCP"): "embedded ICC profile",
	MustParse("iTXt"): "international textual data",
	MustParse("pHYs"): "physical pixel dimensions",
	MustParse("sBIT"): "significant bits",
	MustParse("sPLT"): "suggested palette",
	MustParse("sRGB"): "standard RGB colour space",
	MustParse("tEXt"): "textual data",
	MustParse("tIME"): "image last-modification time",
	MustParse("tRNS"): "transparency",
	MustParse("zTXt"): "compressed textual data",
}

// Describe returns a short description of a chunk type defined by the PNG
// standard, or "" if c is not one of them.
func Describe(c ChunkType) string {
	return known[c]
}

// Known returns every chunk type Describe recognises, sorted by byte value.
func Known() []ChunkType {
	out := make([]ChunkType, 0, len(known))
	for c := range known {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b ChunkType) int {
		return bytes.Compare(a.b[:], b.b[:])
	})
	return out
}
