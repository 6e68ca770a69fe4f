package frame

// EncodeAddr returns the 5-byte address frame for a: the 4 big-endian
// bytes of a followed by their XOR checksum.
func EncodeAddr(a uint32) []byte {
	b := []byte{
		byte(a >> 24),
		byte(a >> 16),
		byte(a >> 8),
		byte(a),
	}
	return append(b, Checksum(b))
}

// WritePayload builds the payload frame for a memWrite chunk: the
// N-1 length byte, the data itself, and a trailing checksum over both.
func WritePayload(data []byte) []byte {
	f := make([]byte, 0, len(data)+2)
	f = append(f, EncodeLen(len(data)))
	f = append(f, data...)
	f = append(f, Checksum(f))
	return f
}

// EraseSector returns the 8-bit sector code for the flash sector
// containing addr, given a flash base address of 0x8000.
func EraseSector(addr uint32) byte {
	return byte((addr - 0x8000) / SectorSize)
}
