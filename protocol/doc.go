// Package protocol implements the wire format of the AN3155 USART
// bootloader protocol.
//
// # Protocol Overview
//
// AN3155 is a byte-oriented command/reply protocol. The host frames
// each command as an opcode plus checksum, optionally followed by
// further fields, and the target confirms every field with a
// single-byte reply:
//
//	Opcode:  [op][op ^ 0xFF]
//	Address: [a3][a2][a1][a0][XOR of the four bytes]
//	Size:    [count-1][(count-1) ^ 0xFF]
//	Slice:   [len prefix][payload...][XOR of prefix and payload]
//	Reply:   0x79 = ACK, 0x1F = NACK, 0xAA = BUSY
//
// Two checksum forms coexist: lone bytes (opcode, size) carry a fixed
// 0xFF XOR mask, while multi-byte runs carry an accumulated XOR. Both
// are mandated by the target protocol.
//
// # Commands
//
// Commands form a closed set modeled as value types. Exchanges maps a
// command to the frames the transport must send, each of which the
// target acknowledges independently:
//
//	frames, err := protocol.Exchanges(protocol.ReadMemory{
//	    Address: 0x08000000,
//	    Size:    size,
//	})
//
// # Responses
//
// Structured responses (Bootloader, Version, ID) decode from an
// io.Reader positioned after the command acknowledgment:
//
//	info, err := protocol.DecodeBootloader(r)
//
// # Errors
//
// Values that do not fit their wire constraints fail construction with
// a RangeError; reply bytes outside the configured reply set fail with
// a DecodeError. Nothing is clamped or silently coerced.
package protocol
