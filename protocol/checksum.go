package protocol

// complement computes the single-byte checksum used for lone framed
// bytes: the value XORed with a fixed 0xFF mask. AN3155 mandates this
// form for opcode and size bytes instead of an accumulated XOR, and the
// asymmetry with multi-byte fields must be preserved exactly.
func complement(b byte) byte {
	return b ^ 0xFF
}

// xorSum accumulates the XOR checksum over a byte run. Multi-byte
// fields (addresses, length-prefixed slices) trail this value on the
// wire.
func xorSum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
