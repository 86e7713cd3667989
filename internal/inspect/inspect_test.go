package inspect_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/inspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	var buf bytes.Buffer
	result, err := inspect.Text(&buf, "RuSt")
	require.NoError(t, err)

	assert.Equal(t, chunktype.MustParse("RuSt"), result.Type)
	assert.Equal(t, []int{82, 117, 83, 116}, result.Bytes)
	assert.True(t, result.Flags.Critical)
	assert.False(t, result.Flags.Public)
	assert.True(t, result.Flags.Valid)
	assert.Empty(t, result.Known)
	assert.Contains(t, buf.String(), "type:         RuSt")
}

func TestText_Errors(t *testing.T) {
	var buf bytes.Buffer

	_, err := inspect.Text(&buf, "Ru1t")
	assert.ErrorIs(t, err, chunktype.ErrInvalidByte)

	_, err = inspect.Text(&buf, "RuS")
	assert.ErrorIs(t, err, chunktype.ErrInvalidLength)

	assert.Empty(t, buf.String(), "nothing printed on error")
}

func TestBytes(t *testing.T) {
	inputs := []string{
		"82,117,83,116",
		"82 117 83 116",
		"82, 117, 83, 116",
		"0x52 0x75 0x53 0x74",
		"52755374",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var buf bytes.Buffer
			result, err := inspect.Bytes(&buf, in)
			require.NoError(t, err)
			assert.Equal(t, "RuSt", result.Type.String())
			assert.Equal(t, in, result.Input)
		})
	}
}

func TestBytes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"too few", "82,117,83", chunktype.ErrInvalidLength},
		{"too many", "82,117,83,116,1", chunktype.ErrInvalidLength},
		{"empty", "", chunktype.ErrInvalidLength},
		{"not a number", "82,u,83,116", inspect.ErrInvalidInput},
		{"out of range", "82,117,83,300", inspect.ErrInvalidInput},
		{"digit byte", "82,117,49,116", chunktype.ErrInvalidByte},
		{"packed hex digit", "52753174", chunktype.ErrInvalidByte},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := inspect.Bytes(&buf, tc.input)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	result, err := inspect.Text(&buf, "IHDR")
	require.NoError(t, err)

	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"input": "IHDR",
		"type": "IHDR",
		"bytes": [73, 72, 68, 82],
		"flags": {"critical": true, "public": true, "reserved_bit_valid": true, "safe_to_copy": false, "valid": true},
		"known": "image header"
	}`, string(b))
}
