package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestExchanges(t *testing.T) {
	size, err := NewSize(4)
	if err != nil {
		t.Fatalf("NewSize() failed: %v", err)
	}

	tests := []struct {
		name     string
		command  Command
		expected [][]byte
	}{
		{
			name:     "synchronize is a bare magic byte",
			command:  Synchronize{},
			expected: [][]byte{{0x7F}},
		},
		{
			name:     "get",
			command:  Get{},
			expected: [][]byte{{0x00, 0xFF}},
		},
		{
			name:     "get version",
			command:  GetVersion{},
			expected: [][]byte{{0x01, 0xFE}},
		},
		{
			name:     "get id",
			command:  GetID{},
			expected: [][]byte{{0x02, 0xFD}},
		},
		{
			name:    "read memory",
			command: ReadMemory{Address: 0x08000000, Size: size},
			expected: [][]byte{
				{0x11, 0xEE},
				{0x08, 0x00, 0x00, 0x00, 0x08},
				{0x03, 0xFC},
			},
		},
		{
			name:    "write memory",
			command: WriteMemory{Address: 0x20000000, Data: []byte{0xDE, 0xAD}},
			expected: [][]byte{
				{0x31, 0xCE},
				{0x20, 0x00, 0x00, 0x00, 0x20},
				{0x01, 0xDE, 0xAD, 0x72},
			},
		},
		{
			name:    "go",
			command: Go{Address: 0x08000000},
			expected: [][]byte{
				{0x21, 0xDE},
				{0x08, 0x00, 0x00, 0x00, 0x08},
			},
		},
		{
			name:     "erase all",
			command:  Erase{},
			expected: [][]byte{{0x43, 0xBC}, {0xFF, 0x00}},
		},
		{
			name:    "erase specific pages",
			command: Erase{Pages: []PageNo{0x01, 0x02}},
			expected: [][]byte{
				{0x43, 0xBC},
				{0x01, 0x01, 0x02, 0x02},
			},
		},
		{
			name:     "extended erase global",
			command:  ExtendedErase{},
			expected: [][]byte{{0x44, 0xBB}, {0xFF, 0xFF, 0x00}},
		},
		{
			name:     "extended erase bank 1",
			command:  ExtendedErase{Special: EraseBank1},
			expected: [][]byte{{0x44, 0xBB}, {0xFF, 0xFE, 0x01}},
		},
		{
			name:     "extended erase bank 2",
			command:  ExtendedErase{Special: EraseBank2},
			expected: [][]byte{{0x44, 0xBB}, {0xFF, 0xFD, 0x02}},
		},
		{
			name:    "extended erase pages",
			command: ExtendedErase{Pages: []ExtendedPageNo{0x0010}},
			expected: [][]byte{
				{0x44, 0xBB},
				{0x00, 0x00, 0x00, 0x10, 0x10},
			},
		},
		{
			name:    "write protect",
			command: WriteProtect{Sectors: []SectorNo{0x0001}},
			expected: [][]byte{
				{0x63, 0x9C},
				{0x00, 0x00, 0x00, 0x01, 0x01},
			},
		},
		{
			name:     "write unprotect",
			command:  WriteUnprotect{},
			expected: [][]byte{{0x73, 0x8C}},
		},
		{
			name:     "readout protect",
			command:  ReadoutProtect{},
			expected: [][]byte{{0x82, 0x7D}},
		},
		{
			name:     "readout unprotect",
			command:  ReadoutUnprotect{},
			expected: [][]byte{{0x92, 0x6D}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Exchanges(tt.command)
			if err != nil {
				t.Fatalf("Exchanges() failed: %v", err)
			}
			if len(frames) != len(tt.expected) {
				t.Fatalf("Exchanges() returned %d frames, want %d", len(frames), len(tt.expected))
			}
			for i, frame := range frames {
				if !bytes.Equal(frame, tt.expected[i]) {
					t.Errorf("frame %d = % X, want % X", i, frame, tt.expected[i])
				}
			}
		})
	}
}

func TestExchangesRangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		command Command
	}{
		{name: "write with no data", command: WriteMemory{Address: 0, Data: nil}},
		{name: "write over 256 bytes", command: WriteMemory{Address: 0, Data: make([]byte, 257)}},
		{name: "too many extended pages", command: ExtendedErase{Pages: make([]ExtendedPageNo, 0xFF01)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Exchanges(tt.command)
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("error = %v, want *RangeError", err)
			}
		})
	}
}

func TestDecodeReply(t *testing.T) {
	tests := []struct {
		name     string
		b        byte
		rev      Revision
		expected Reply
		wantErr  bool
	}{
		{name: "ack", b: 0x79, rev: RevisionLegacy, expected: Ack},
		{name: "nack", b: 0x1F, rev: RevisionLegacy, expected: NAck},
		{name: "busy under extended set", b: 0xAA, rev: RevisionExtended, expected: Busy},
		{name: "busy under legacy set", b: 0xAA, rev: RevisionLegacy, wantErr: true},
		{name: "arbitrary byte", b: 0x42, rev: RevisionExtended, wantErr: true},
		{name: "sync magic is not a reply", b: 0x7F, rev: RevisionExtended, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := DecodeReply(tt.b, tt.rev)
			if tt.wantErr {
				var decodeErr *DecodeError
				if !errors.As(err, &decodeErr) {
					t.Fatalf("error = %v, want *DecodeError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply != tt.expected {
				t.Errorf("DecodeReply() = %v, want %v", reply, tt.expected)
			}
		})
	}
}
