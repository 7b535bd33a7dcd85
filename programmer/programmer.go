package programmer

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/stm32kit/go-an3155/protocol"
)

// Programmer drives one AN3155-compliant target over one exclusively
// owned serial connection. It is not safe for concurrent use: every
// operation blocks the calling goroutine until its serial I/O
// completes or the probe's read timeout elapses.
type Programmer struct {
	port     Port
	probe    Probe
	endpoint string
	log      *zap.Logger
}

// Attach wraps an already-open connection without running the
// identification handshake. The probe is copied; later changes to the
// caller's copy do not affect the programmer.
func Attach(port Port, probe *Probe) *Programmer {
	return &Programmer{
		port:  port,
		probe: *probe,
		log:   probe.Logger(),
	}
}

// Open opens an endpoint, configures it per the probe, and runs the
// identification handshake. The connection is closed and not returned
// when identification fails.
func Open(endpoint string, probe *Probe) (*Programmer, error) {
	port, err := openPort(endpoint, probe)
	if err != nil {
		return nil, &OpenError{Endpoint: endpoint, Err: err}
	}
	p := &Programmer{
		port:     port,
		probe:    *probe,
		endpoint: endpoint,
		log:      probe.Logger(),
	}
	if err := p.identify(); err != nil {
		port.Close()
		return nil, err
	}
	return p, nil
}

// Endpoint returns the endpoint name the programmer was opened on, or
// an empty string for attached connections.
func (p *Programmer) Endpoint() string {
	return p.endpoint
}

// Port returns the underlying connection.
func (p *Programmer) Port() Port {
	return p.port
}

// Close releases the underlying connection.
func (p *Programmer) Close() error {
	return p.port.Close()
}

// portReader adapts the port's timeout convention (a timed-out read
// returns 0, nil) to an error, so decode helpers cannot spin on an
// idle line.
type portReader struct {
	port Port
}

func (r portReader) Read(buf []byte) (int, error) {
	n, err := r.port.Read(buf)
	if err == nil && n == 0 {
		return 0, ErrTimeout
	}
	return n, err
}

func (p *Programmer) reader() io.Reader {
	return portReader{port: p.port}
}

func (p *Programmer) readFull(buf []byte) error {
	_, err := io.ReadFull(p.reader(), buf)
	return err
}

// send writes a frame with no reply expectation.
func (p *Programmer) send(frame []byte) error {
	_, err := p.port.Write(frame)
	return err
}

// sendReliable writes a frame and blocks for exactly one reply. Ack
// means the target atomically confirmed the frame; NAck and Busy fail
// with their respective errors.
func (p *Programmer) sendReliable(frame []byte) error {
	if err := p.send(frame); err != nil {
		return err
	}
	return p.recvReply()
}

func (p *Programmer) recvReply() error {
	var buf [1]byte
	if err := p.readFull(buf[:]); err != nil {
		return err
	}
	reply, err := protocol.DecodeReply(buf[0], p.probe.Revision())
	if err != nil {
		return err
	}
	p.log.Debug("reliable reply", zap.Stringer("reply", reply))
	switch reply {
	case protocol.NAck:
		return ErrNAck
	case protocol.Busy:
		return ErrBusy
	}
	return nil
}

// ackReceipt confirms a received variable-length response to the
// target, as the protocol requires from the host side.
func (p *Programmer) ackReceipt() error {
	return p.send([]byte{byte(protocol.Ack)})
}

// recvReliable decodes one typed payload from the programmer's
// connection and acknowledges its receipt.
func recvReliable[T any](p *Programmer, decode func(io.Reader) (T, error)) (T, error) {
	v, err := decode(p.reader())
	if err != nil {
		var zero T
		return zero, err
	}
	if err := p.ackReceipt(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// SendCommand transmits a command, one reliable exchange per wire
// field. Multi-field commands (read, write, erase) are never merged
// into a single write because the target acknowledges each field
// independently.
func (p *Programmer) SendCommand(cmd protocol.Command) error {
	frames, err := protocol.Exchanges(cmd)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		if err := p.sendReliable(frame); err != nil {
			return err
		}
	}
	return nil
}

// ReadBootloader reads the bootloader version and supported opcodes.
func (p *Programmer) ReadBootloader() (*protocol.Bootloader, error) {
	if err := p.SendCommand(protocol.Get{}); err != nil {
		return nil, err
	}
	return recvReliable(p, protocol.DecodeBootloader)
}

// ReadVersion reads the bootloader version and option bytes.
func (p *Programmer) ReadVersion() (*protocol.Version, error) {
	if err := p.SendCommand(protocol.GetVersion{}); err != nil {
		return nil, err
	}
	return recvReliable(p, protocol.DecodeVersion)
}

// ReadID reads the chip identifier.
func (p *Programmer) ReadID() (*protocol.ID, error) {
	if err := p.SendCommand(protocol.GetID{}); err != nil {
		return nil, err
	}
	return recvReliable(p, protocol.DecodeID)
}

// ReadMemory reads size bytes starting at address. The payload
// arrives raw, not length-framed; size must be in [1, 256].
func (p *Programmer) ReadMemory(address uint32, size int) ([]byte, error) {
	sz, err := protocol.NewSize(size)
	if err != nil {
		return nil, err
	}
	cmd := protocol.ReadMemory{Address: protocol.Address(address), Size: sz}
	if err := p.SendCommand(cmd); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if err := p.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteMemory writes data starting at address. Data must be 1 to 256
// bytes; callers chunk larger transfers themselves.
func (p *Programmer) WriteMemory(address uint32, data []byte) error {
	return p.SendCommand(protocol.WriteMemory{Address: protocol.Address(address), Data: data})
}

// Go jumps to the application at address.
func (p *Programmer) Go(address uint32) error {
	return p.SendCommand(protocol.Go{Address: protocol.Address(address)})
}

// EraseAll performs a legacy global erase.
func (p *Programmer) EraseAll() error {
	return p.SendCommand(protocol.Erase{})
}

// ErasePages erases the listed single-byte pages.
func (p *Programmer) ErasePages(pages []protocol.PageNo) error {
	return p.SendCommand(protocol.Erase{Pages: pages})
}

// ExtendedEraseAll performs an extended global erase.
func (p *Programmer) ExtendedEraseAll() error {
	return p.SendCommand(protocol.ExtendedErase{Special: protocol.EraseGlobal})
}

// ExtendedEraseBank erases one flash bank (1 or 2).
func (p *Programmer) ExtendedEraseBank(bank int) error {
	special := protocol.EraseBank1
	if bank == 2 {
		special = protocol.EraseBank2
	}
	return p.SendCommand(protocol.ExtendedErase{Special: special})
}

// ExtendedErasePages erases the listed two-byte pages.
func (p *Programmer) ExtendedErasePages(pages []protocol.ExtendedPageNo) error {
	return p.SendCommand(protocol.ExtendedErase{Pages: pages})
}

// WriteProtect enables write protection on the listed sectors.
func (p *Programmer) WriteProtect(sectors []protocol.SectorNo) error {
	return p.SendCommand(protocol.WriteProtect{Sectors: sectors})
}

// WriteUnprotect disables write protection on the whole flash.
func (p *Programmer) WriteUnprotect() error {
	return p.SendCommand(protocol.WriteUnprotect{})
}

// ReadoutProtect enables readout protection.
func (p *Programmer) ReadoutProtect() error {
	return p.SendCommand(protocol.ReadoutProtect{})
}

// ReadoutUnprotect disables readout protection.
func (p *Programmer) ReadoutUnprotect() error {
	return p.SendCommand(protocol.ReadoutUnprotect{})
}

// Drain reads whatever bytes remain buffered on the line. An expired
// read deadline terminates the drain with the bytes collected so far;
// it is the one operation where a timeout is an empty result, not an
// error.
func (p *Programmer) Drain() ([]byte, error) {
	var out []byte
	buf := make([]byte, 256)
	for {
		n, err := p.port.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}

func (p *Programmer) clearBuffers() error {
	if err := p.port.ResetInputBuffer(); err != nil {
		return err
	}
	return p.port.ResetOutputBuffer()
}

// setSignal writes the physical level for a logical assertion.
func (p *Programmer) setSignal(sig Signal, active bool) error {
	raw := sig.RawLevel(active)
	p.log.Debug("set signal",
		zap.Stringer("line", sig.Line()),
		zap.Bool("active", active),
		zap.Bool("raw", raw),
	)
	if sig.Line() == DTR {
		return p.port.SetDTR(raw)
	}
	return p.port.SetRTS(raw)
}

// SetReset asserts or deasserts the logical reset line. Unbound lines
// are left untouched.
func (p *Programmer) SetReset(active bool) error {
	if sig := p.probe.SignalScheme().Reset(); sig != nil {
		return p.setSignal(*sig, active)
	}
	return nil
}

// SetBoot asserts or deasserts the logical boot line. Unbound lines
// are left untouched.
func (p *Programmer) SetBoot(active bool) error {
	if sig := p.probe.SignalScheme().Boot(); sig != nil {
		return p.setSignal(*sig, active)
	}
	return nil
}

// Reset pulses the reset line: deassert, assert, hold for the probe's
// reset duration, deassert again. A no-op when reset is unbound.
func (p *Programmer) Reset() error {
	if p.probe.SignalScheme().Reset() == nil {
		return nil
	}
	if err := p.SetReset(false); err != nil {
		return err
	}
	if err := p.SetReset(true); err != nil {
		return err
	}
	sleep(p.probe.ResetFor())
	return p.SetReset(false)
}
