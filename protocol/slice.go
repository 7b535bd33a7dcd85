package protocol

// Item enumerates the value kinds a wire slice can carry. Each kind
// fixes its own element width, length-prefix width, and valid length
// range; the framing and checksum logic is shared.
type Item interface {
	Byte | PageNo | ExtendedPageNo | SectorNo
}

type (
	// Byte is one byte of a memory payload (write data).
	Byte byte

	// PageNo is a single-byte flash page number (legacy erase).
	PageNo byte

	// ExtendedPageNo is a two-byte flash page number (extended erase).
	ExtendedPageNo uint16

	// SectorNo is a two-byte flash sector number (write protect).
	SectorNo uint16
)

// itemSpec fixes the wire parameters of an item kind.
type itemSpec struct {
	elemWidth   int // bytes per element, big-endian
	prefixWidth int // bytes in the length prefix
	minLen      int
	maxLen      int
}

func specOf[T Item]() itemSpec {
	switch any(*new(T)).(type) {
	case Byte, PageNo:
		return itemSpec{elemWidth: 1, prefixWidth: 1, minLen: 1, maxLen: 256}
	default: // ExtendedPageNo, SectorNo
		// 0xFFF0 and above are reserved for special erase codes.
		return itemSpec{elemWidth: 2, prefixWidth: 2, minLen: 1, maxLen: 0xFF00}
	}
}

// Slice is a bounded-length run of items. On the wire it is framed as
// a length prefix storing len-1, the raw elements, and a trailing XOR
// checksum over prefix and elements. Every variable-length command
// carries all three parts.
type Slice[T Item] struct {
	items []T
}

// NewSlice validates the payload length against the item kind's range.
// Out-of-range lengths fail with a RangeError.
func NewSlice[T Item](items []T) (Slice[T], error) {
	spec := specOf[T]()
	if len(items) < spec.minLen || len(items) > spec.maxLen {
		return Slice[T]{}, &RangeError{Value: len(items), Min: spec.minLen, Max: spec.maxLen}
	}
	return Slice[T]{items: items}, nil
}

// NewData wraps a raw memory payload for a write command.
func NewData(data []byte) (Slice[Byte], error) {
	items := make([]Byte, len(data))
	for i, b := range data {
		items[i] = Byte(b)
	}
	return NewSlice(items)
}

// Len returns the number of items in the slice.
func (s Slice[T]) Len() int {
	return len(s.items)
}

// Items returns the items carried by the slice.
func (s Slice[T]) Items() []T {
	return s.items
}

// Encode returns the framed wire form: length prefix, elements,
// checksum.
func (s Slice[T]) Encode() []byte {
	spec := specOf[T]()
	buf := make([]byte, 0, spec.prefixWidth+len(s.items)*spec.elemWidth+1)
	stored := len(s.items) - 1
	if spec.prefixWidth == 2 {
		buf = append(buf, byte(stored>>8))
	}
	buf = append(buf, byte(stored))
	for _, item := range s.items {
		if spec.elemWidth == 2 {
			buf = append(buf, byte(uint16(item)>>8))
		}
		buf = append(buf, byte(item))
	}
	return append(buf, xorSum(buf))
}
