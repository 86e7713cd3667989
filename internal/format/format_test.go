package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/png"
	"github.com/stretchr/testify/assert"
)

func TestFlagString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RuSt", "C-RS"},
		{"IHDR", "CPR-"},
		{"tEXt", "-PRS"},
		{"rust", "---S"},
		{"RUST", "CPR-"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FlagString(chunktype.MustParse(tc.in).Flags()))
		})
	}
}

func TestDetail(t *testing.T) {
	var buf bytes.Buffer
	Detail(&buf, chunktype.MustParse("RuSt"))
	out := buf.String()

	assert.Contains(t, out, "type:         RuSt\n")
	assert.Contains(t, out, "bytes:        82 117 83 116\n")
	assert.Contains(t, out, "hex:          52 75 53 74\n")
	assert.Contains(t, out, "critical:     yes\n")
	assert.Contains(t, out, "public:       no\n")
	assert.Contains(t, out, "valid:        yes\n")
	assert.NotContains(t, out, "known:")

	buf.Reset()
	Detail(&buf, chunktype.IHDR)
	assert.Contains(t, buf.String(), "known:        image header\n")
}

func TestChunks(t *testing.T) {
	var buf bytes.Buffer
	Chunks(&buf, []png.Header{
		{Offset: 8, Length: 13, Type: chunktype.IHDR},
		{Offset: 33, Length: 0, Type: chunktype.IEND},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "OFFSET"))
	assert.Contains(t, lines[1], "IHDR")
	assert.Contains(t, lines[1], "CPR-")
	assert.Contains(t, lines[2], "image trailer")

	buf.Reset()
	Chunks(&buf, nil)
	assert.Empty(t, buf.String())
}
