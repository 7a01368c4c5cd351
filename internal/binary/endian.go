package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian is the TIFF "MM" byte order (Motorola).
	BigEndian Endianness = iota

	// LittleEndian is the TIFF "II" byte order (Intel).
	LittleEndian
)

// String returns the TIFF byte order mark.
func (e Endianness) String() string {
	if e == LittleEndian {
		return "II"
	}
	return "MM"
}

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Uint16 decodes the first two bytes of b.
func (e Endianness) Uint16(b []byte) uint16 {
	return e.ByteOrder().Uint16(b)
}

// Uint32 decodes the first four bytes of b.
func (e Endianness) Uint32(b []byte) uint32 {
	return e.ByteOrder().Uint32(b)
}

// Uint64 decodes the first eight bytes of b.
func (e Endianness) Uint64(b []byte) uint64 {
	return e.ByteOrder().Uint64(b)
}

// TIFFOrder parses a TIFF header ("II*\0" or "MM\0*").
//
// Returns false if header is shorter than four bytes or carries neither
// byte order mark with the magic number 42.
func TIFFOrder(header []byte) (Endianness, bool) {
	if len(header) < 4 {
		return BigEndian, false
	}
	switch {
	case header[0] == 'I' && header[1] == 'I':
		return LittleEndian, binary.LittleEndian.Uint16(header[2:4]) == 42
	case header[0] == 'M' && header[1] == 'M':
		return BigEndian, binary.BigEndian.Uint16(header[2:4]) == 42
	default:
		return BigEndian, false
	}
}

// ReadBE reads a numeric value of type T at the given offset using big-endian byte order.
//
// JPEG segment lengths are big-endian regardless of the embedded TIFF order.
//
// Example:
//
//	segLen, err := binary.ReadBE[uint16](sr, offset+2, "segment length")
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
//
// This is the low-level function used by ReadBE and Reader.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	var zero T
	size := sizeOf[T]()

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch size {
	case 1:
		val = T(buf[0])
	case 2:
		val = T(endian.Uint16(buf))
	case 4:
		val = T(endian.Uint32(buf))
	case 8:
		val = T(endian.Uint64(buf))
	}

	return val, nil
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}
