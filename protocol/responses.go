package protocol

import (
	"fmt"
	"io"
)

// Bootloader describes the target bootloader as reported by the Get
// command: its version byte and the opcodes it supports. The payload
// carries a length prefix but no checksum.
type Bootloader struct {
	version byte
	opcodes []Opcode
}

// DecodeBootloader reads a Get response payload. The first byte is the
// opcode count, the second the version, followed by count raw opcode
// bytes.
func DecodeBootloader(r io.Reader) (*Bootloader, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("decode bootloader info: %w", err)
	}
	raw := make([]byte, hdr[0])
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("decode bootloader opcodes: %w", err)
	}
	opcodes := make([]Opcode, len(raw))
	for i, b := range raw {
		opcodes[i] = Opcode(b)
	}
	return &Bootloader{version: hdr[1], opcodes: opcodes}, nil
}

// Version returns the raw version byte.
func (b *Bootloader) Version() byte {
	return b.version
}

// Major returns the high nibble of the version byte.
func (b *Bootloader) Major() byte {
	return b.version >> 4
}

// Minor returns the low nibble of the version byte.
func (b *Bootloader) Minor() byte {
	return b.version & 0xF
}

// VersionString formats the version as "major.minor".
func (b *Bootloader) VersionString() string {
	return fmt.Sprintf("%d.%d", b.Major(), b.Minor())
}

// Opcodes returns the opcodes the target reports as supported.
func (b *Bootloader) Opcodes() []Opcode {
	return b.opcodes
}

// Version is the Get Version response: the version byte plus two
// option bytes. Fixed size, no length prefix.
type Version struct {
	version byte
	options [2]byte
}

// DecodeVersion reads a Get Version response payload.
func DecodeVersion(r io.Reader) (*Version, error) {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("decode version: %w", err)
	}
	return &Version{version: buf[0], options: [2]byte{buf[1], buf[2]}}, nil
}

// Version returns the raw version byte.
func (v *Version) Version() byte {
	return v.version
}

// Options returns the two option bytes.
func (v *Version) Options() [2]byte {
	return v.options
}

// ID is the chip identifier reported by the Get ID command. The
// length-prefix byte encodes count-1, so the payload is len+1 raw
// bytes.
type ID struct {
	id []byte
}

// DecodeID reads a Get ID response payload.
func DecodeID(r io.Reader) (*ID, error) {
	var hdr [1]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("decode id: %w", err)
	}
	id := make([]byte, int(hdr[0])+1)
	if _, err := io.ReadFull(r, id); err != nil {
		return nil, fmt.Errorf("decode id bytes: %w", err)
	}
	return &ID{id: id}, nil
}

// Bytes returns the raw identifier bytes, most significant first.
func (i *ID) Bytes() []byte {
	return i.id
}

// Uint16 returns the identifier as a big-endian 16-bit value, the form
// product IDs are quoted in. Shorter identifiers are right-aligned.
func (i *ID) Uint16() uint16 {
	return uint16(i.Uint32())
}

// Uint32 returns the identifier as a big-endian 32-bit value. Shorter
// identifiers are right-aligned.
func (i *ID) Uint32() uint32 {
	var v uint32
	for _, b := range i.id {
		v = v<<8 | uint32(b)
	}
	return v
}

func (i *ID) String() string {
	return fmt.Sprintf("0x%04X", i.Uint16())
}
