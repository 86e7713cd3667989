// errors.go defines the decode errors returned by the constructors.
//
// Separated to keep the error taxonomy in one place. There are exactly two
// kinds and both are structural: a byte outside the alphabet, or text of the
// wrong length.
//
// Design: A struct error carries the offending value for diagnostics, and Is
// maps each kind onto a sentinel so callers can classify with errors.Is
// without a type assertion, the same way the sentinel-only packages do.

package chunktype

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidByte matches any DecodeError of KindInvalidByte.
	ErrInvalidByte = errors.New("invalid byte")
	// ErrInvalidLength matches any DecodeError of KindInvalidLength.
	ErrInvalidLength = errors.New("invalid length")
)

// Kind classifies a DecodeError.
type Kind int

const (
	// KindInvalidByte means a byte was not an ASCII letter.
	KindInvalidByte Kind = iota + 1
	// KindInvalidLength means text input was not exactly Size bytes long.
	KindInvalidLength
)

func (k Kind) String() string {
	switch k {
	case KindInvalidByte:
		return "invalid byte"
	case KindInvalidLength:
		return "invalid length"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DecodeError reports why input was rejected.
// Byte is set for KindInvalidByte, Length for KindInvalidLength.
type DecodeError struct {
	Kind   Kind
	Byte   byte
	Length int
}

func invalidByte(b byte) *DecodeError {
	return &DecodeError{Kind: KindInvalidByte, Byte: b}
}

func invalidLength(n int) *DecodeError {
	return &DecodeError{Kind: KindInvalidLength, Length: n}
}

// Error describes the violated rule and the offending value.
// Bytes are shown in decimal and binary so the case bit is visible.
func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindInvalidByte:
		return fmt.Sprintf("invalid byte: %d (0b%08b) is not an ASCII letter", e.Byte, e.Byte)
	case KindInvalidLength:
		return fmt.Sprintf("invalid length: %d (expected %d)", e.Length, Size)
	default:
		return "invalid chunk type"
	}
}

// Is matches the sentinel for e.Kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrInvalidByte:
		return e.Kind == KindInvalidByte
	case ErrInvalidLength:
		return e.Kind == KindInvalidLength
	}
	return false
}
