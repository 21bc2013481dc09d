package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// Ledger records are stored inside the managed region itself, so all record
// field access goes through these helpers rather than Go struct values.
//
// Implementation: Uses encoding/binary.LittleEndian. The standard library
// implementation is already highly optimized; the compiler inlines these
// calls, so there is no benefit to unsafe-pointer variants.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutI32 writes an int32 value to the buffer at the specified offset in little-endian format.
func PutI32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadI32 reads an int32 value from the buffer at the specified offset in little-endian format.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}
