package programmer

import (
	"errors"

	"go.uber.org/zap"

	"github.com/stm32kit/go-an3155/protocol"
)

// Handshake sends the baudrate detection byte and waits for its Ack.
// Targets that already completed the handshake NAck a repeated one.
func (p *Programmer) Handshake() error {
	return p.sendReliable([]byte{protocol.SyncByte})
}

// tryIdentify runs one identification attempt using the probe's
// strategy.
func (p *Programmer) tryIdentify() error {
	switch p.probe.Identify() {
	case IdentifyGet:
		_, err := p.ReadBootloader()
		return err
	default:
		return p.Handshake()
	}
}

// identify brings the target into system memory and confirms protocol
// compliance. The boot line is asserted for the whole sequence so each
// reset pulse re-enters the bootloader; identification attempts are
// repeated up to the probe's retry budget before giving up.
func (p *Programmer) identify() error {
	if err := p.SetBoot(true); err != nil {
		return err
	}
	for attempt := 1; attempt <= p.probe.MaxAttempts(); attempt++ {
		if err := p.Reset(); err != nil {
			return err
		}
		if err := p.clearBuffers(); err != nil {
			return err
		}
		err := p.tryIdentify()
		if err == nil {
			p.log.Debug("device identified", zap.Int("attempt", attempt))
			if err := p.SetBoot(false); err != nil {
				return err
			}
			return p.clearBuffers()
		}
		if !recoverable(err) {
			return err
		}
		p.log.Debug("identification attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return ErrUnidentified
}

// recoverable reports whether an identification failure is worth
// another reset pulse. Protocol-level rejections and silence are;
// transport failures are not.
func recoverable(err error) bool {
	if errors.Is(err, ErrNAck) || errors.Is(err, ErrBusy) || errors.Is(err, ErrTimeout) {
		return true
	}
	var decodeErr *protocol.DecodeError
	return errors.As(err, &decodeErr)
}
