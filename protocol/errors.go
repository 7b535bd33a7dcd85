package protocol

import "fmt"

// RangeError reports a value that does not fit its wire-format range,
// such as a transfer count outside [1, 256] or a slice payload whose
// length falls outside its item kind's valid range.
type RangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%d is not within valid range [%d, %d]", e.Value, e.Min, e.Max)
}

// DecodeError reports a byte that does not decode to any known wire
// value.
type DecodeError struct {
	What string
	Byte byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s from byte 0x%02X", e.What, e.Byte)
}
