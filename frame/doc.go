// Package frame implements the stateless framing and checksum primitives
// used by the STM8 UART bootloader protocol.
//
// Every helper here is a pure function of its arguments: no I/O, no
// retries, no notion of a connection. The bootloader package builds
// wire frames with these helpers and hands the resulting bytes to a
// serialport.Port.
//
// # Checksums
//
// The protocol's only integrity check is an XOR fold over a byte
// range (Checksum). A single opcode is instead followed by its bitwise
// complement (Command); Checksum of a one-byte slice is the byte itself.
//
// # Length encoding
//
// Wherever the protocol document says "transfer N bytes", the byte
// that actually goes on the wire is N-1 (EncodeLen), because 0 is
// never a useful transfer length and this reclaims 256 as a
// representable count in a single byte.
package frame
