package programmer

import (
	"io"
	"time"

	"go.bug.st/serial"
)

// Port is the serial connection surface the programmer drives. It is
// satisfied by go.bug.st/serial.Port and by test doubles. A timed-out
// read returns (0, nil), matching the underlying library.
type Port interface {
	io.ReadWriteCloser
	SetDTR(value bool) error
	SetRTS(value bool) error
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error
}

// openPort, listPorts and sleep are indirections over the serial
// library and the clock so discovery, open and reset pulses can be
// exercised against simulated endpoints in tests.
var (
	openPort  = openSerialPort
	listPorts = serial.GetPortsList
	sleep     = time.Sleep
)

// openSerialPort opens and configures an endpoint with the fixed
// AN3155 framing: 8 data bits, even parity, 1 stop bit, no flow
// control, plus the probe's baudrate and read timeout.
func openSerialPort(endpoint string, probe *Probe) (Port, error) {
	mode := &serial.Mode{
		BaudRate: probe.Baudrate(),
		DataBits: 8,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(endpoint, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(probe.Timeout()); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

// Ports lists the serial endpoints visible to the host without probing
// any of them.
func Ports() ([]string, error) {
	return listPorts()
}
