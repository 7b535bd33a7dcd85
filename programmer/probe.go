package programmer

import (
	"time"

	"go.uber.org/zap"

	"github.com/stm32kit/go-an3155/protocol"
)

// IdentifyStrategy selects how an identification attempt confirms
// protocol compliance.
type IdentifyStrategy int

const (
	// IdentifyHandshake sends the 0x7F baudrate handshake and expects
	// an Ack.
	IdentifyHandshake IdentifyStrategy = iota

	// IdentifyGet sends a Get command and expects a well-formed
	// response. Useful against targets that are already synchronized
	// and would NAck a second handshake byte.
	IdentifyGet
)

// Probe carries the parameters for probing an AN3155-compliant device.
// It is immutable once built; every Programmer created from it works
// on its own copy, so later builders never affect live connections.
type Probe struct {
	baudrate    int
	scheme      SignalScheme
	resetFor    time.Duration
	maxAttempts int
	timeout     time.Duration
	identify    IdentifyStrategy
	revision    protocol.Revision
	logger      *zap.Logger
}

func defaultProbe() Probe {
	return Probe{
		baudrate:    115200,
		scheme:      DefaultSignalScheme(),
		resetFor:    10 * time.Millisecond,
		maxAttempts: 8,
		timeout:     100 * time.Millisecond,
		identify:    IdentifyHandshake,
		revision:    protocol.RevisionLegacy,
		logger:      zap.NewNop(),
	}
}

// DefaultProbe returns a probe with the default configuration:
// 115200 baud, default signal scheme, 10ms reset pulse, 8 attempts,
// 100ms read timeout, handshake identification, legacy reply set.
func DefaultProbe() Probe {
	return defaultProbe()
}

// Baudrate returns the configured baudrate.
func (p *Probe) Baudrate() int { return p.baudrate }

// SignalScheme returns the configured reset/boot wiring.
func (p *Probe) SignalScheme() SignalScheme { return p.scheme }

// ResetFor returns how long the reset pulse holds the line active.
func (p *Probe) ResetFor() time.Duration { return p.resetFor }

// MaxAttempts returns the identification retry budget.
func (p *Probe) MaxAttempts() int { return p.maxAttempts }

// Timeout returns the per-read timeout on the underlying connection.
func (p *Probe) Timeout() time.Duration { return p.timeout }

// Identify returns the identification strategy.
func (p *Probe) Identify() IdentifyStrategy { return p.identify }

// Revision returns the protocol revision deciding the reply set.
func (p *Probe) Revision() protocol.Revision { return p.revision }

// Logger returns the logger probing and transport operations use.
func (p *Probe) Logger() *zap.Logger { return p.logger }

// ProbeBuilder assembles a Probe starting from the defaults.
type ProbeBuilder struct {
	inner Probe
}

// NewProbeBuilder returns a builder seeded with the default probe.
func NewProbeBuilder() *ProbeBuilder {
	return &ProbeBuilder{inner: defaultProbe()}
}

// Baudrate sets the baudrate for probing and transfers.
func (b *ProbeBuilder) Baudrate(baudrate int) *ProbeBuilder {
	b.inner.baudrate = baudrate
	return b
}

// SignalScheme replaces the whole reset/boot wiring.
func (b *ProbeBuilder) SignalScheme(scheme SignalScheme) *ProbeBuilder {
	b.inner.scheme = scheme
	return b
}

// SignalReset sets the reset binding; nil unbinds it.
func (b *ProbeBuilder) SignalReset(signal *Signal) *ProbeBuilder {
	b.inner.scheme.reset = signal
	return b
}

// SignalBoot sets the boot binding; nil unbinds it.
func (b *ProbeBuilder) SignalBoot(signal *Signal) *ProbeBuilder {
	b.inner.scheme.boot = signal
	return b
}

// ResetFor sets how long the reset pulse holds the line active.
func (b *ProbeBuilder) ResetFor(d time.Duration) *ProbeBuilder {
	b.inner.resetFor = d
	return b
}

// MaxAttempts sets the identification retry budget.
func (b *ProbeBuilder) MaxAttempts(n int) *ProbeBuilder {
	if n > 0 {
		b.inner.maxAttempts = n
	}
	return b
}

// Timeout sets the per-read timeout on the underlying connection.
func (b *ProbeBuilder) Timeout(d time.Duration) *ProbeBuilder {
	b.inner.timeout = d
	return b
}

// Identify sets the identification strategy.
func (b *ProbeBuilder) Identify(strategy IdentifyStrategy) *ProbeBuilder {
	b.inner.identify = strategy
	return b
}

// Revision sets the protocol revision deciding the reply set.
func (b *ProbeBuilder) Revision(rev protocol.Revision) *ProbeBuilder {
	b.inner.revision = rev
	return b
}

// Logger sets the logger for probing and transport operations.
func (b *ProbeBuilder) Logger(logger *zap.Logger) *ProbeBuilder {
	if logger != nil {
		b.inner.logger = logger
	}
	return b
}

// Build returns the assembled probe.
func (b *ProbeBuilder) Build() Probe {
	return b.inner
}
