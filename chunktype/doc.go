// Package chunktype provides the validated 4-byte chunk type code used by PNG
// and similar tagged container formats.
//
// A ChunkType can only be obtained through a validating constructor, so any
// ChunkType held by a caller (other than the zero value) is known to consist
// of exactly four ASCII letters.
//
// # Construction
//
// FromBytes validates a raw 4-byte field, typically read from a chunk header.
// Parse validates text and checks the length before the alphabet:
//
//	ct, err := chunktype.Parse("tEXt")
//	if err != nil {
//		return err
//	}
//
// # Property Bits
//
// Bit 5 of each byte (the ASCII case bit) carries a flag:
//
//	byte 0  uppercase = critical        (IsCritical)
//	byte 1  uppercase = public          (IsPublic)
//	byte 2  uppercase = reserved valid  (IsReservedBitValid)
//	byte 3  lowercase = safe to copy    (IsSafeToCopy)
//
// IsValid reports only the reserved-bit convention. A chunk type such as
// "Rust" is well-formed and constructs without error, but IsValid returns
// false.
//
// # Error Handling
//
// Constructors return a *DecodeError. Use errors.Is with ErrInvalidByte or
// ErrInvalidLength to classify it, and errors.As to read the offending value:
//
//	var de *chunktype.DecodeError
//	if errors.As(err, &de) && de.Kind == chunktype.KindInvalidByte {
//	    fmt.Printf("bad byte 0x%02x\n", de.Byte)
//	}
package chunktype
