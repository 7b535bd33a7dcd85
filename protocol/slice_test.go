package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewDataEncode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected []byte
	}{
		{
			name: "single byte",
			data: []byte{0xAB},
			// prefix 0x00, payload, checksum 0x00 ^ 0xAB
			expected: []byte{0x00, 0xAB, 0xAB},
		},
		{
			name:     "four bytes",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: []byte{0x03, 0x01, 0x02, 0x03, 0x04, 0x07},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slice, err := NewData(tt.data)
			if err != nil {
				t.Fatalf("NewData() failed: %v", err)
			}
			if got := slice.Encode(); !bytes.Equal(got, tt.expected) {
				t.Errorf("Encode() = % X, want % X", got, tt.expected)
			}
		})
	}
}

func TestDataEncodeMax(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	slice, err := NewData(data)
	if err != nil {
		t.Fatalf("NewData() failed: %v", err)
	}

	frame := slice.Encode()
	if len(frame) != 1+256+1 {
		t.Fatalf("frame length = %d, want %d", len(frame), 1+256+1)
	}
	if frame[0] != 0xFF {
		t.Errorf("length prefix = 0x%02X, want 0xFF", frame[0])
	}
	if frame[len(frame)-1] != xorSum(frame[:len(frame)-1]) {
		t.Error("trailing checksum is not the XOR of prefix and payload")
	}
}

func TestSliceLengthRanges(t *testing.T) {
	t.Run("bytes out of range", func(t *testing.T) {
		if _, err := NewData(nil); err == nil {
			t.Error("NewData(nil) succeeded, want range error")
		}
		if _, err := NewData(make([]byte, 257)); err == nil {
			t.Error("NewData(257 bytes) succeeded, want range error")
		}
	})

	t.Run("pages out of range", func(t *testing.T) {
		var none []PageNo
		if _, err := NewSlice(none); err == nil {
			t.Error("NewSlice(no pages) succeeded, want range error")
		}
		if _, err := NewSlice(make([]PageNo, 257)); err == nil {
			t.Error("NewSlice(257 pages) succeeded, want range error")
		}
	})

	t.Run("extended pages out of range", func(t *testing.T) {
		_, err := NewSlice(make([]ExtendedPageNo, 0xFF01))
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("error = %v, want *RangeError", err)
		}
		if rangeErr.Max != 0xFF00 {
			t.Errorf("range max = %d, want %d", rangeErr.Max, 0xFF00)
		}
	})
}

func TestPageSliceEncode(t *testing.T) {
	slice, err := NewSlice([]PageNo{0x05, 0x06, 0x07})
	if err != nil {
		t.Fatalf("NewSlice() failed: %v", err)
	}

	expected := []byte{0x02, 0x05, 0x06, 0x07, 0x06}
	if got := slice.Encode(); !bytes.Equal(got, expected) {
		t.Errorf("Encode() = % X, want % X", got, expected)
	}
}

func TestExtendedPageSliceEncode(t *testing.T) {
	slice, err := NewSlice([]ExtendedPageNo{0x0000, 0x0102})
	if err != nil {
		t.Fatalf("NewSlice() failed: %v", err)
	}

	// Two-byte prefix storing len-1, two-byte big-endian pages,
	// trailing XOR.
	expected := []byte{0x00, 0x01, 0x00, 0x00, 0x01, 0x02, 0x02}
	if got := slice.Encode(); !bytes.Equal(got, expected) {
		t.Errorf("Encode() = % X, want % X", got, expected)
	}
}

func TestSectorSliceEncode(t *testing.T) {
	slice, err := NewSlice([]SectorNo{0x0003})
	if err != nil {
		t.Fatalf("NewSlice() failed: %v", err)
	}

	expected := []byte{0x00, 0x00, 0x00, 0x03, 0x03}
	if got := slice.Encode(); !bytes.Equal(got, expected) {
		t.Errorf("Encode() = % X, want % X", got, expected)
	}
}

func TestSliceLengthField(t *testing.T) {
	// The serialized length field stores len minus the range lower
	// bound, which is 1 for every defined item kind.
	for _, n := range []int{1, 2, 16, 256} {
		slice, err := NewSlice(make([]PageNo, n))
		if err != nil {
			t.Fatalf("NewSlice(%d pages) failed: %v", n, err)
		}
		if got := slice.Encode()[0]; got != byte(n-1) {
			t.Errorf("length field for %d pages = 0x%02X, want 0x%02X", n, got, byte(n-1))
		}
	}
}
