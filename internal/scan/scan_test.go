package scan

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	stdpng "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/check"
	"github.com/jpl-au/pngchunk/internal/png"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG writes a real 1x1 PNG and returns its path.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, stdpng.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

// writeChunks writes a PNG stream built from bare chunk types.
func writeChunks(t *testing.T, dir, name string, types ...string) string {
	t.Helper()
	b := append([]byte(nil), png.Signature[:]...)
	for _, typ := range types {
		b = binary.BigEndian.AppendUint32(b, 0)
		b = append(b, typ...)
		b = append(b, 0, 0, 0, 0)
	}
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, b, 0644))
	return p
}

func chunkTypes(f File) []string {
	var out []string
	for _, c := range f.Chunks {
		out = append(out, c.Type.String())
	}
	return out
}

func TestOne(t *testing.T) {
	p := writePNG(t, t.TempDir(), "a.png")

	f, err := One(context.Background(), p, Options{})
	require.NoError(t, err)
	assert.Empty(t, f.Error)
	require.NotEmpty(t, f.Chunks)
	assert.Equal(t, chunktype.IHDR, f.Chunks[0].Type)
	assert.True(t, f.Chunks[0].Flags.Critical)
	assert.Equal(t, chunktype.IEND, f.Chunks[len(f.Chunks)-1].Type)
}

func TestOne_Options(t *testing.T) {
	dir := t.TempDir()
	p := writeChunks(t, dir, "x.png", "IHDR", "tEXt", "zTXt", "IDAT", "IEND")

	t.Run("ignore", func(t *testing.T) {
		f, err := One(context.Background(), p, Options{
			Ignore: []chunktype.ChunkType{chunktype.MustParse("tEXt"), chunktype.MustParse("zTXt")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"IHDR", "IDAT", "IEND"}, chunkTypes(f))
		assert.Equal(t, 2, f.Ignored)
	})

	t.Run("max chunks", func(t *testing.T) {
		f, err := One(context.Background(), p, Options{MaxChunks: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"IHDR", "tEXt"}, chunkTypes(f))
		assert.True(t, f.Truncated)
	})

	t.Run("require valid", func(t *testing.T) {
		bad := writeChunks(t, dir, "bad.png", "IHDR", "Rust", "IEND")

		f, err := One(context.Background(), bad, Options{})
		require.NoError(t, err)
		assert.Len(t, f.Chunks, 3)

		f, err = One(context.Background(), bad, Options{RequireValid: true})
		assert.ErrorIs(t, err, check.ErrReservedBit)
		assert.Equal(t, []string{"IHDR"}, chunkTypes(f))
		assert.Contains(t, f.Error, "offset 20")
	})

	t.Run("ignored type skips require valid", func(t *testing.T) {
		bad := writeChunks(t, dir, "private.png", "IHDR", "prvt", "IEND")

		f, err := One(context.Background(), bad, Options{
			Ignore:       []chunktype.ChunkType{chunktype.MustParse("prvt")},
			RequireValid: true,
		})
		require.NoError(t, err)
		assert.Empty(t, f.Error)
		assert.Equal(t, 1, f.Ignored)
		assert.Equal(t, []string{"IHDR", "IEND"}, chunkTypes(f))
	})
}

func TestOne_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		f, err := One(context.Background(), filepath.Join(dir, "nope.png"), Options{})
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NotEmpty(t, f.Error)
	})

	t.Run("not png", func(t *testing.T) {
		p := filepath.Join(dir, "text.png")
		require.NoError(t, os.WriteFile(p, []byte("hello, not a png"), 0644))
		_, err := One(context.Background(), p, Options{})
		assert.ErrorIs(t, err, png.ErrBadSignature)
	})

	t.Run("bad chunk type", func(t *testing.T) {
		p := writeChunks(t, dir, "badtype.png", "IHDR", "ID4T", "IEND")
		f, err := One(context.Background(), p, Options{})
		assert.ErrorIs(t, err, chunktype.ErrInvalidByte)
		assert.Equal(t, []string{"IHDR"}, chunkTypes(f))
	})

	t.Run("cancelled", func(t *testing.T) {
		p := writePNG(t, dir, "ok.png")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := One(ctx, p, Options{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png")
	writePNG(t, dir, "sub/b.png")
	writeChunks(t, dir, "sub/c.png", "IHDR", "IEND")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	var buf bytes.Buffer
	result, err := Run(context.Background(), &buf, []string{filepath.Join(dir, "**", "*.png")}, Options{})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "a.png", filepath.Base(result.Files[0].Path))
	assert.Equal(t, []string{"IHDR", "IEND"}, chunkTypes(result.Files[2]))

	out := buf.String()
	assert.Contains(t, out, "OFFSET")
	assert.Contains(t, out, "image header")
	assert.NotContains(t, out, "notes.txt")
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png")
	bad := writeChunks(t, dir, "bad.png", "IHDR", "1234")

	var buf bytes.Buffer
	result, err := Run(context.Background(), &buf, []string{bad, good, filepath.Join(dir, "*.gif")}, Options{})
	require.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, err.Error(), "2 of 3")

	require.Len(t, result.Files, 3)
	assert.Equal(t, bad, result.Files[0].Path)
	assert.NotEmpty(t, result.Files[0].Error)
	assert.Equal(t, good, result.Files[1].Path)
	assert.Empty(t, result.Files[1].Error)
	assert.Equal(t, filepath.Join(dir, "*.gif"), result.Files[2].Path)
	assert.Equal(t, ErrNoMatch.Error(), result.Files[2].Error)
	assert.Contains(t, buf.String(), "error:")
}

func TestRun_PatternErrorInPlace(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png")
	b := writePNG(t, dir, "b.png")
	gif := filepath.Join(dir, "*.gif")

	var buf bytes.Buffer
	result, err := Run(context.Background(), &buf, []string{a, gif, b}, Options{Workers: 2})
	require.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, err.Error(), "1 of 3")

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{a, gif, b},
		[]string{result.Files[0].Path, result.Files[1].Path, result.Files[2].Path})
	assert.Empty(t, result.Files[0].Error)
	assert.Equal(t, ErrNoMatch.Error(), result.Files[1].Error)
	assert.Empty(t, result.Files[2].Error)

	// The pattern error is printed between the two tables
	out := buf.String()
	ia := strings.Index(out, a)
	ig := strings.Index(out, gif+": error:")
	ib := strings.Index(out, b)
	require.True(t, ia >= 0 && ig >= 0 && ib >= 0, out)
	assert.Less(t, ia, ig)
	assert.Less(t, ig, ib)
}

func TestRun_OrderPreserved(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"e.png", "a.png", "d.png", "b.png", "c.png", "f.png"} {
		paths = append(paths, writePNG(t, dir, name))
	}

	var buf bytes.Buffer
	result, err := Run(context.Background(), &buf, paths, Options{Workers: 3})
	require.NoError(t, err)

	require.Len(t, result.Files, len(paths))
	for i, f := range result.Files {
		assert.Equal(t, paths[i], f.Path)
	}
	// Headings appear in argument order too
	out := buf.String()
	assert.Less(t, strings.Index(out, "e.png"), strings.Index(out, "a.png"))
}

func TestRun_Cancelled(t *testing.T) {
	p := writePNG(t, t.TempDir(), "a.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, io.Discard, []string{p}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitStatic(t *testing.T) {
	tests := []struct {
		in, dir, rest string
	}{
		{"*.png", ".", "*.png"},
		{"img/*.png", "img", "*.png"},
		{"img/**/*.png", "img", "**/*.png"},
		{"/abs/img/*.png", "/abs/img", "*.png"},
		{"/*.png", "/", "*.png"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			dir, rest := splitStatic(tc.in)
			assert.Equal(t, tc.dir, dir)
			assert.Equal(t, tc.rest, rest)
		})
	}
}
