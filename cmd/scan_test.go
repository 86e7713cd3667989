package cmd

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanResult mirrors the JSON written by "scan -o json".
type scanResult struct {
	Files []struct {
		Path   string `json:"path"`
		Chunks []struct {
			Offset int64  `json:"offset"`
			Length uint32 `json:"length"`
			Type   string `json:"type"`
		} `json:"chunks"`
		Ignored   int    `json:"ignored"`
		Truncated bool   `json:"truncated"`
		Error     string `json:"error"`
	} `json:"files"`
	Failed int `json:"failed"`
}

// chunk frames one chunk with a correct CRC.
func chunk(typ string, data []byte) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.BigEndian, uint32(len(data)))
	b.WriteString(typ)
	b.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	_ = binary.Write(&b, binary.BigEndian, crc.Sum32())
	return b.Bytes()
}

func TestScan(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("gray.png", false)

	out := env.run("scan", "gray.png")
	env.contains(out, "OFFSET")
	env.contains(out, "DESCRIPTION")
	env.contains(out, "IHDR  CPR-   image header")
	env.contains(out, "IDAT  CPR-   image data")
	env.contains(out, "IEND  CPR-   image trailer")
}

func TestScan_Paletted(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("pal.png", true)

	out := env.run("scan", "pal.png")
	env.contains(out, "PLTE")
}

func TestScan_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("gray.png", false)

	var res scanResult
	require.NoError(t, env.runJSON(&res, "scan", "gray.png"))
	require.Len(t, res.Files, 1)

	f := res.Files[0]
	assert.Equal(t, "gray.png", f.Path)
	assert.Empty(t, f.Error)
	require.GreaterOrEqual(t, len(f.Chunks), 3)
	assert.Equal(t, "IHDR", f.Chunks[0].Type)
	assert.Equal(t, int64(8), f.Chunks[0].Offset)
	assert.Equal(t, uint32(13), f.Chunks[0].Length)
	assert.Equal(t, "IEND", f.Chunks[len(f.Chunks)-1].Type)
	assert.Equal(t, uint32(0), f.Chunks[len(f.Chunks)-1].Length)
}

func TestScan_Glob(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("a.png", false)
	env.writePNG("img/b.png", false)
	env.writePNG("img/deep/c.png", true)
	env.writeFile("img/notes.txt", []byte("not a png"))

	out := env.run("scan", "**/*.png")
	env.contains(out, "a.png\n=====")
	env.contains(out, "img/b.png")
	env.contains(out, "img/deep/c.png")
	env.notContains(out, "notes.txt")
}

func TestScan_Ignore(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("gray.png", false)

	out := env.run("scan", "gray.png", "--ignore", "IDAT")
	env.notContains(out, "IDAT")
	env.contains(out, "ignored)")

	t.Run("merged with config", func(t *testing.T) {
		env.run("config", "scan.ignore", "IEND")

		var res scanResult
		require.NoError(t, env.runJSON(&res, "scan", "gray.png", "--ignore", "IDAT"))
		require.Len(t, res.Files, 1)
		for _, c := range res.Files[0].Chunks {
			assert.NotContains(t, []string{"IDAT", "IEND"}, c.Type)
		}
		assert.Positive(t, res.Files[0].Ignored)
	})

	t.Run("invalid type", func(t *testing.T) {
		out, err := env.runErr("scan", "gray.png", "--ignore", "ID1T")
		assert.Error(t, err)
		env.contains(out, "invalid byte")
	})
}

func TestScan_MaxChunks(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("gray.png", false)

	var res scanResult
	require.NoError(t, env.runJSON(&res, "scan", "gray.png", "--max-chunks", "1"))
	require.Len(t, res.Files, 1)
	assert.Len(t, res.Files[0].Chunks, 1)
	assert.True(t, res.Files[0].Truncated)

	out := env.run("scan", "gray.png", "--max-chunks", "1")
	env.contains(out, "(stopped after 1 chunks)")

	_, err := env.runErr("scan", "gray.png", "--max-chunks", "0")
	assert.Error(t, err)

	out, err = env.runErr("scan", "gray.png", "--max-chunks", "1000001")
	assert.Error(t, err)
	env.contains(out, "between 1 and 1000000")
}

func TestScan_Strict(t *testing.T) {
	env := newTestEnv(t)

	var data bytes.Buffer
	data.WriteString("\x89PNG\r\n\x1a\n")
	data.Write(chunk("IHDR", make([]byte, 13)))
	data.Write(chunk("prvt", []byte("x"))) // reserved bit not set
	data.Write(chunk("IEND", nil))
	env.writeFile("odd.png", data.Bytes())

	out := env.run("scan", "odd.png")
	env.contains(out, "prvt")

	out, err := env.runErr("scan", "--strict", "odd.png")
	assert.Error(t, err)
	env.contains(out, "reserved bit not set")
}

func TestScan_Errors(t *testing.T) {
	t.Run("not a png", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("text.png", []byte("hello, world"))

		out, err := env.runErr("scan", "text.png")
		assert.Error(t, err)
		env.contains(out, "text.png: error:")
	})

	t.Run("bad chunk type", func(t *testing.T) {
		env := newTestEnv(t)

		var data bytes.Buffer
		data.WriteString("\x89PNG\r\n\x1a\n")
		data.Write(chunk("IHDR", make([]byte, 13)))
		data.Write(chunk("ab1d", nil))
		env.writeFile("bad.png", data.Bytes())

		var res scanResult
		err := env.runJSON(&res, "scan", "bad.png")
		assert.Error(t, err)
		require.Len(t, res.Files, 1)
		assert.Equal(t, 1, res.Failed)
		assert.Contains(t, res.Files[0].Error, "invalid byte: 49")
		// Chunks read before the bad one are kept
		require.Len(t, res.Files[0].Chunks, 1)
		assert.Equal(t, "IHDR", res.Files[0].Chunks[0].Type)
	})

	t.Run("missing file continues", func(t *testing.T) {
		env := newTestEnv(t)
		env.writePNG("good.png", false)

		var res scanResult
		err := env.runJSON(&res, "scan", "missing.png", "good.png")
		assert.Error(t, err)
		require.Len(t, res.Files, 2)
		assert.NotEmpty(t, res.Files[0].Error)
		assert.Empty(t, res.Files[1].Error)
		assert.Equal(t, 1, res.Failed)
	})

	t.Run("glob with no match", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("scan", "*.png")
		assert.Error(t, err)
		env.contains(out, "no files match pattern")
	})
}

func TestScan_AbsolutePath(t *testing.T) {
	env := newTestEnv(t)
	env.writePNG("gray.png", false)

	out := env.run("scan", filepath.Join(env.dir, "*.png"))
	env.contains(out, "IHDR")
}
