package protocol

// Address is a 32-bit memory address. On the wire it occupies five
// bytes: the value big-endian followed by the XOR of its four raw
// bytes.
type Address uint32

// Encode returns the five-byte wire form of the address.
func (a Address) Encode() []byte {
	buf := []byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
	return append(buf, xorSum(buf))
}

// Size is a transfer count in the range [1, 256]. The wire stores
// count-1 in one byte followed by its complement checksum, so the
// zero value of Size means a count of one.
type Size byte

// NewSize converts a count to its wire representation. Counts outside
// [1, 256] do not fit the single stored byte and fail with a
// RangeError; they are never clamped.
func NewSize(count int) (Size, error) {
	if count < 1 || count > 256 {
		return 0, &RangeError{Value: count, Min: 1, Max: 256}
	}
	return Size(count - 1), nil
}

// Count returns the transfer count the size encodes.
func (s Size) Count() int {
	return int(s) + 1
}

// Encode returns the two-byte wire form of the size.
func (s Size) Encode() []byte {
	return []byte{byte(s), complement(byte(s))}
}
