package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: MPEG audio frame headers, ID3v2, Xing/VBRI headers.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: RIFF/WAV chunks, Ogg page headers, Vorbis packets.
	LittleEndian
)

// String returns the conventional name of the byte order.
func (e Endianness) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

func (e Endianness) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Unsigned is the set of fixed-width integers the cursor can decode.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T Unsigned]() int {
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

// decode converts buf (exactly sizeOf[T]() bytes) to T using the given order.
func decode[T Unsigned](buf []byte, endian Endianness) T {
	order := endian.order()
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(order.Uint16(buf))
	case uint32:
		return T(order.Uint32(buf))
	default:
		return T(order.Uint64(buf))
	}
}

// Decode reads a T from the start of buf with the given byte order.
//
// Decode is for callers that already hold a bounds-checked slice (e.g. from
// Cursor.Bytes). It panics if buf is shorter than T.
//
// Example:
//
//	flags := binary.Decode[uint32](xing[4:8], binary.BigEndian)
func Decode[T Unsigned](buf []byte, endian Endianness) T {
	return decode[T](buf[:sizeOf[T]()], endian)
}
