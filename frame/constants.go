package frame

// Handshake bytes exchanged during synchronisation and as the first byte
// of every command reply.
const (
	SYNCH byte = 0x7F // sent by the host to trigger autobaud lock
	ACK   byte = 0x79 // command accepted / step succeeded
	NACK  byte = 0x1F // command refused, or "already synchronised"
)

// Command opcodes. Every command frame is [opcode, opcode^0xFF].
const (
	GET   byte = 0x00
	READ  byte = 0x11
	GO    byte = 0x21
	WRITE byte = 0x31
	ERASE byte = 0x43
)

// MaxReadChunk and MaxWriteChunk bound a single memRead/memWrite
// transaction; longer transfers are split by the bootloader package.
const (
	MaxReadChunk  = 256
	MaxWriteChunk = 128
)

// SectorSize is the flash erase granularity of the targeted device family.
const SectorSize = 1024
