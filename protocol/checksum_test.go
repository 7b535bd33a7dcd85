package protocol

import "testing"

func TestComplement(t *testing.T) {
	tests := []struct {
		name     string
		in       byte
		expected byte
	}{
		{name: "get opcode", in: 0x00, expected: 0xFF},
		{name: "version opcode", in: 0x01, expected: 0xFE},
		{name: "erase all magic", in: 0xFF, expected: 0x00},
		{name: "mid value", in: 0x5A, expected: 0xA5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complement(tt.in); got != tt.expected {
				t.Errorf("complement(0x%02X) = 0x%02X, want 0x%02X", tt.in, got, tt.expected)
			}
		})
	}

	// The complement must hold for every byte value, not just the
	// opcode table.
	for b := 0; b < 256; b++ {
		if complement(byte(b)) != byte(b)^0xFF {
			t.Fatalf("complement(0x%02X) != 0x%02X ^ 0xFF", b, b)
		}
	}
}

func TestXorSum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{name: "empty", data: nil, expected: 0x00},
		{name: "single byte", data: []byte{0x42}, expected: 0x42},
		{name: "self cancelling", data: []byte{0xAA, 0xAA}, expected: 0x00},
		{name: "address bytes", data: []byte{0x08, 0x00, 0x00, 0x00}, expected: 0x08},
		{name: "mixed run", data: []byte{0x01, 0x02, 0x04, 0x08}, expected: 0x0F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := xorSum(tt.data); got != tt.expected {
				t.Errorf("xorSum(% X) = 0x%02X, want 0x%02X", tt.data, got, tt.expected)
			}
		})
	}
}

func BenchmarkXorSum(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		xorSum(data)
	}
}
