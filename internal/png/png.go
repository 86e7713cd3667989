// Package png walks the chunk headers of a PNG stream.
//
// Only the framing is read: the 8-byte signature, then for each chunk its
// length and type. Chunk data and CRC are skipped without being read or
// checked, so a Reader is cheap to run over large images and says nothing
// about whether their contents are intact.
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jpl-au/pngchunk/chunktype"
)

// Signature is the 8-byte header every PNG stream starts with.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

var (
	// ErrBadSignature is returned when the stream does not start with Signature.
	ErrBadSignature = errors.New("not a PNG stream: bad signature")
	// ErrTruncated is returned when the stream ends inside a chunk.
	ErrTruncated = errors.New("truncated chunk")
	// ErrLengthOverflow is returned for a chunk length above 2^31-1.
	ErrLengthOverflow = errors.New("chunk length exceeds 2^31-1")
)

// headerSize is length (4) + type (4); crcSize follows the data.
const (
	headerSize = 8
	crcSize    = 4
)

// Header describes one chunk.
type Header struct {
	Offset int64               `json:"offset"` // byte offset of the length field
	Length uint32              `json:"length"` // data length, excluding type and CRC
	Type   chunktype.ChunkType `json:"type"`
}

// ChunkError reports a chunk whose type field failed validation.
type ChunkError struct {
	Offset int64
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk at offset %d: %v", e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Reader yields chunk headers in stream order.
type Reader struct {
	r    io.Reader
	off  int64
	done bool
}

// NewReader reads and checks the PNG signature.
func NewReader(r io.Reader) (*Reader, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadSignature
		}
		return nil, err
	}
	if !bytes.Equal(sig[:], Signature[:]) {
		return nil, ErrBadSignature
	}
	return &Reader{r: r, off: int64(len(sig))}, nil
}

// Next returns the next chunk header and positions the reader after that
// chunk's CRC. It returns io.EOF after IEND or when the stream ends cleanly
// on a chunk boundary.
func (r *Reader) Next() (Header, error) {
	if r.done {
		return Header{}, io.EOF
	}

	var buf [headerSize]byte
	n, err := io.ReadFull(r.r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			r.done = true
			return Header{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w at offset %d", ErrTruncated, r.off)
		}
		return Header{}, err
	}

	h := Header{
		Offset: r.off,
		Length: binary.BigEndian.Uint32(buf[:4]),
	}
	if h.Length > math.MaxInt32 {
		return Header{}, fmt.Errorf("%w at offset %d: %d", ErrLengthOverflow, r.off, h.Length)
	}

	h.Type, err = chunktype.FromBytes([4]byte(buf[4:8]))
	if err != nil {
		return Header{}, &ChunkError{Offset: r.off, Err: err}
	}

	if err := r.skip(int64(h.Length) + crcSize); err != nil {
		return Header{}, err
	}
	r.off += headerSize + int64(h.Length) + crcSize

	if h.Type == chunktype.IEND {
		r.done = true
	}
	return h, nil
}

// skip discards n bytes, seeking when the underlying reader allows it.
func (r *Reader) skip(n int64) error {
	if s, ok := r.r.(io.Seeker); ok {
		cur, err := s.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		end, err := s.Seek(0, io.SeekEnd)
		if err != nil {
			return err
		}
		if end-cur < n {
			return fmt.Errorf("%w at offset %d", ErrTruncated, r.off)
		}
		_, err = s.Seek(cur+n, io.SeekStart)
		return err
	}

	copied, err := io.CopyN(io.Discard, r.r, n)
	if copied < n {
		if err == nil || errors.Is(err, io.EOF) {
			return fmt.Errorf("%w at offset %d", ErrTruncated, r.off)
		}
	}
	return err
}
