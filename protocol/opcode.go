package protocol

import "fmt"

// Opcode is a single-byte bootloader operation identifier. On the wire
// it occupies two bytes: the raw opcode followed by its complement
// checksum.
type Opcode byte

// Opcodes defined by AN3155. The table is the union of the legacy
// command set and the extended set; which subset a given target
// implements is reported by the Get command. Mass erase devices carry
// either Erase (0x43) or ExtendedErase (0x44), never both.
const (
	OpGet              Opcode = 0x00
	OpGetVersion       Opcode = 0x01
	OpGetID            Opcode = 0x02
	OpGetChecksum      Opcode = 0xA1
	OpReadMemory       Opcode = 0x11
	OpGo               Opcode = 0x21
	OpWriteMemory      Opcode = 0x31
	OpErase            Opcode = 0x43
	OpExtendedErase    Opcode = 0x44
	OpSpecial          Opcode = 0x50
	OpExtendedSpecial  Opcode = 0x51
	OpWriteProtect     Opcode = 0x63
	OpWriteUnprotect   Opcode = 0x73
	OpReadoutProtect   Opcode = 0x82
	OpReadoutUnprotect Opcode = 0x92
)

var opcodeNames = map[Opcode]string{
	OpGet:              "GET",
	OpGetVersion:       "GET_VERSION",
	OpGetID:            "GET_ID",
	OpGetChecksum:      "GET_CHECKSUM",
	OpReadMemory:       "READ_MEMORY",
	OpGo:               "GO",
	OpWriteMemory:      "WRITE_MEMORY",
	OpErase:            "ERASE",
	OpExtendedErase:    "EXTENDED_ERASE",
	OpSpecial:          "SPECIAL",
	OpExtendedSpecial:  "EXTENDED_SPECIAL",
	OpWriteProtect:     "WRITE_PROTECT",
	OpWriteUnprotect:   "WRITE_UNPROTECT",
	OpReadoutProtect:   "READOUT_PROTECT",
	OpReadoutUnprotect: "READOUT_UNPROTECT",
}

// Encode returns the two-byte wire form of the opcode.
func (o Opcode) Encode() []byte {
	return []byte{byte(o), complement(byte(o))}
}

// String returns the AN3155 name of the opcode. Raw bytes outside the
// known table are representable (targets may report vendor commands)
// and display as unknown.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", byte(o))
}
