package chunktype

// Size is the fixed length of a chunk type code in bytes.
const Size = 4

// ChunkType is a validated 4-byte chunk type code.
//
// The zero value is not a valid chunk type; obtain values through FromBytes
// or Parse. ChunkType is comparable, so == is byte-for-byte equality.
type ChunkType struct {
	b [Size]byte
}

// Flags is the set of properties derived from the case of each byte.
type Flags struct {
	Critical         bool `json:"critical" yaml:"critical"`
	Public           bool `json:"public" yaml:"public"`
	ReservedBitValid bool `json:"reserved_bit_valid" yaml:"reserved_bit_valid"`
	SafeToCopy       bool `json:"safe_to_copy" yaml:"safe_to_copy"`
	Valid            bool `json:"valid" yaml:"valid"`
}

// FromBytes validates b and returns the chunk type it encodes.
// The first byte that is not an ASCII letter is reported as an InvalidByte
// error; no ChunkType is returned in that case.
func FromBytes(b [Size]byte) (ChunkType, error) {
	for _, c := range b {
		if !IsValidByte(c) {
			return ChunkType{}, invalidByte(c)
		}
	}
	return ChunkType{b: b}, nil
}

// Parse validates s and returns the chunk type it spells.
//
// Length is checked first: anything other than exactly 4 bytes fails with an
// InvalidLength error regardless of content. Each byte is then checked in
// order and the first non-letter fails with an InvalidByte error.
func Parse(s string) (ChunkType, error) {
	if len(s) != Size {
		return ChunkType{}, invalidLength(len(s))
	}

	var b [Size]byte
	for i := 0; i < Size; i++ {
		if !IsValidByte(s[i]) {
			return ChunkType{}, invalidByte(s[i])
		}
		b[i] = s[i]
	}
	return ChunkType{b: b}, nil
}

// MustParse is like Parse but panics on error.
// Intended for package-level variables and tests.
func MustParse(s string) ChunkType {
	c, err := Parse(s)
	if err != nil {
		panic("chunktype: MustParse(" + s + "): " + err.Error())
	}
	return c
}

// IsValidByte reports whether b is an ASCII upper- or lowercase letter.
func IsValidByte(b byte) bool {
	return isUpper(b) || isLower(b)
}

// Bytes returns a copy of the raw bytes.
func (c ChunkType) Bytes() [Size]byte {
	return c.b
}

// IsCritical reports whether byte 0 is uppercase. Decoders must understand
// critical chunks to display the image.
func (c ChunkType) IsCritical() bool {
	return isUpper(c.b[0])
}

// IsPublic reports whether byte 1 is uppercase.
func (c ChunkType) IsPublic() bool {
	return isUpper(c.b[1])
}

// IsReservedBitValid reports whether byte 2 is uppercase.
func (c ChunkType) IsReservedBitValid() bool {
	return isUpper(c.b[2])
}

// IsSafeToCopy reports whether byte 3 is lowercase.
func (c ChunkType) IsSafeToCopy() bool {
	return isLower(c.b[3])
}

// IsValid reports whether the reserved-bit convention holds.
// It does not consider the other three flags.
func (c ChunkType) IsValid() bool {
	return c.IsReservedBitValid()
}

// IsZero reports whether c is the zero value, i.e. was never constructed.
func (c ChunkType) IsZero() bool {
	return c == ChunkType{}
}

// Flags returns all derived properties at once.
func (c ChunkType) Flags() Flags {
	return Flags{
		Critical:         c.IsCritical(),
		Public:           c.IsPublic(),
		ReservedBitValid: c.IsReservedBitValid(),
		SafeToCopy:       c.IsSafeToCopy(),
		Valid:            c.IsValid(),
	}
}

// String renders the four bytes as four characters.
func (c ChunkType) String() string {
	return string(c.b[:])
}

// ASCII only: the case bit is meaningless outside A-Z/a-z.
func isUpper(b byte) bool { return 'A' <= b && b <= 'Z' }
func isLower(b byte) bool { return 'a' <= b && b <= 'z' }
