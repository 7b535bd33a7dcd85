package protocol

// SyncByte is the baudrate handshake magic. It is the one request sent
// as a bare byte with no opcode or checksum wrapper.
const SyncByte byte = 0x7F

// Command is one bootloader request. The set is closed and fixed by
// the protocol; Exchanges maps each variant to its wire form.
type Command interface {
	isCommand()
}

type (
	// Synchronize performs the baudrate handshake.
	Synchronize struct{}

	// Get asks for the bootloader version and supported opcodes.
	Get struct{}

	// GetVersion asks for the version and option bytes.
	GetVersion struct{}

	// GetID asks for the chip identifier.
	GetID struct{}

	// ReadMemory reads Size bytes starting at Address.
	ReadMemory struct {
		Address Address
		Size    Size
	}

	// WriteMemory writes Data starting at Address. Data must fit a
	// single Slice[Byte], that is 1 to 256 bytes.
	WriteMemory struct {
		Address Address
		Data    []byte
	}

	// Go jumps to the application at Address.
	Go struct {
		Address Address
	}

	// Erase erases the listed pages, or the whole flash when Pages is
	// empty.
	Erase struct {
		Pages []PageNo
	}

	// ExtendedErase erases the listed two-byte pages, or performs the
	// special erase named by Special when Pages is empty. A zero
	// Special means global erase.
	ExtendedErase struct {
		Special SpecialErase
		Pages   []ExtendedPageNo
	}

	// WriteProtect enables write protection on the listed sectors.
	WriteProtect struct {
		Sectors []SectorNo
	}

	// WriteUnprotect disables write protection on the whole flash.
	WriteUnprotect struct{}

	// ReadoutProtect enables readout protection.
	ReadoutProtect struct{}

	// ReadoutUnprotect disables readout protection.
	ReadoutUnprotect struct{}
)

func (Synchronize) isCommand()      {}
func (Get) isCommand()              {}
func (GetVersion) isCommand()       {}
func (GetID) isCommand()            {}
func (ReadMemory) isCommand()       {}
func (WriteMemory) isCommand()      {}
func (Go) isCommand()               {}
func (Erase) isCommand()            {}
func (ExtendedErase) isCommand()    {}
func (WriteProtect) isCommand()     {}
func (WriteUnprotect) isCommand()   {}
func (ReadoutProtect) isCommand()   {}
func (ReadoutUnprotect) isCommand() {}

// SpecialErase names the fixed extended-erase codes. Encoded as the
// two-byte code plus its XOR checksum, this yields the fixed three-byte
// sequences FF FF 00 (global), FF FE 01 (bank 1), FF FD 02 (bank 2).
type SpecialErase uint16

const (
	EraseGlobal SpecialErase = 0xFFFF
	EraseBank1  SpecialErase = 0xFFFE
	EraseBank2  SpecialErase = 0xFFFD
)

// eraseAllMagic is the legacy global-erase payload: 0xFF plus its
// complement.
var eraseAllMagic = []byte{0xFF, complement(0xFF)}

func (s SpecialErase) encode() []byte {
	buf := []byte{byte(s >> 8), byte(s)}
	return append(buf, xorSum(buf))
}

// Exchanges maps a command to its wire exchanges. Each returned frame
// is transmitted and acknowledged by the target separately, in order;
// fields are never merged into a single write. The error reports a
// value that does not fit its wire-format constraints.
func Exchanges(cmd Command) ([][]byte, error) {
	switch c := cmd.(type) {
	case Synchronize:
		return [][]byte{{SyncByte}}, nil
	case Get:
		return [][]byte{OpGet.Encode()}, nil
	case GetVersion:
		return [][]byte{OpGetVersion.Encode()}, nil
	case GetID:
		return [][]byte{OpGetID.Encode()}, nil
	case ReadMemory:
		return [][]byte{OpReadMemory.Encode(), c.Address.Encode(), c.Size.Encode()}, nil
	case WriteMemory:
		data, err := NewData(c.Data)
		if err != nil {
			return nil, err
		}
		return [][]byte{OpWriteMemory.Encode(), c.Address.Encode(), data.Encode()}, nil
	case Go:
		return [][]byte{OpGo.Encode(), c.Address.Encode()}, nil
	case Erase:
		if len(c.Pages) == 0 {
			return [][]byte{OpErase.Encode(), eraseAllMagic}, nil
		}
		pages, err := NewSlice(c.Pages)
		if err != nil {
			return nil, err
		}
		return [][]byte{OpErase.Encode(), pages.Encode()}, nil
	case ExtendedErase:
		if len(c.Pages) == 0 {
			special := c.Special
			if special == 0 {
				special = EraseGlobal
			}
			return [][]byte{OpExtendedErase.Encode(), special.encode()}, nil
		}
		pages, err := NewSlice(c.Pages)
		if err != nil {
			return nil, err
		}
		return [][]byte{OpExtendedErase.Encode(), pages.Encode()}, nil
	case WriteProtect:
		sectors, err := NewSlice(c.Sectors)
		if err != nil {
			return nil, err
		}
		return [][]byte{OpWriteProtect.Encode(), sectors.Encode()}, nil
	case WriteUnprotect:
		return [][]byte{OpWriteUnprotect.Encode()}, nil
	case ReadoutProtect:
		return [][]byte{OpReadoutProtect.Encode()}, nil
	case ReadoutUnprotect:
		return [][]byte{OpReadoutUnprotect.Encode()}, nil
	}
	// The command set is closed; new variants must be added here.
	panic("protocol: unhandled command variant")
}
