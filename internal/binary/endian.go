package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: MP4 atoms, ID3v2 frames, FLAC block headers and pictures.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: Vorbis comment blocks, Ogg page headers.
	LittleEndian
)

func (e Endianness) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// Syncsafe decodes a 4-byte syncsafe integer. Only the low 7 bits of each
// byte contribute; high bits are ignored. Callers guarantee len(b) >= 4.
func Syncsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// Uint16 decodes the first two bytes of b with the given byte order.
// Callers guarantee len(b) >= 2.
func Uint16(b []byte, endian Endianness) uint16 {
	if endian == LittleEndian {
		return binary.LittleEndian.Uint16(b)
	}
	return binary.BigEndian.Uint16(b)
}

// Uint32 decodes the first four bytes of b with the given byte order.
// Callers guarantee len(b) >= 4.
func Uint32(b []byte, endian Endianness) uint32 {
	if endian == LittleEndian {
		return binary.LittleEndian.Uint32(b)
	}
	return binary.BigEndian.Uint32(b)
}

// Uint64 decodes the first eight bytes of b with the given byte order.
// Callers guarantee len(b) >= 8.
func Uint64(b []byte, endian Endianness) uint64 {
	if endian == LittleEndian {
		return binary.LittleEndian.Uint64(b)
	}
	return binary.BigEndian.Uint64(b)
}
