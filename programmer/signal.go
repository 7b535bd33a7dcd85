package programmer

import (
	"fmt"
	"strings"
)

// Line is a physical modem-control output. RTS and DTR are rarely
// used for flow control nowadays; boards wire them to MCU reset and
// boot pins and treat them as host-driven GPIOs.
type Line int

const (
	// RTS is the Request To Send output.
	RTS Line = iota

	// DTR is the Data Terminal Ready output.
	DTR
)

func (l Line) String() string {
	if l == DTR {
		return "dtr"
	}
	return "rts"
}

// Signal binds a logical control line to a modem-control output with a
// declared active polarity.
type Signal struct {
	line       Line
	activeWhen bool
}

// Rts binds a signal to the RTS output. activeWhen is the physical
// level at which the signal counts as asserted.
func Rts(activeWhen bool) Signal {
	return Signal{line: RTS, activeWhen: activeWhen}
}

// Dtr binds a signal to the DTR output.
func Dtr(activeWhen bool) Signal {
	return Signal{line: DTR, activeWhen: activeWhen}
}

// Line returns the physical output the signal is bound to.
func (s Signal) Line() Line {
	return s.line
}

// ActiveWhen returns the physical level at which the signal is
// asserted.
func (s Signal) ActiveWhen() bool {
	return s.activeWhen
}

// RawLevel converts a logical assertion into the physical level to
// write, inverting it when the binding is active-low.
func (s Signal) RawLevel(active bool) bool {
	if s.activeWhen {
		return active
	}
	return !active
}

// String formats the signal in the "rts"/"!dtr" syntax accepted by
// ParseSignal.
func (s Signal) String() string {
	if s.activeWhen {
		return s.line.String()
	}
	return "!" + s.line.String()
}

// ParseSignal parses a signal binding: "rts" or "dtr", optionally
// prefixed with "!" for active-low, or "none" for an unbound line.
// An unbound line is never touched, since some environments must not
// override signals they did not configure.
func ParseSignal(s string) (*Signal, error) {
	activeWhen := true
	name := s
	if strings.HasPrefix(s, "!") {
		activeWhen = false
		name = strings.TrimPrefix(s, "!")
	}
	switch name {
	case "rts":
		sig := Rts(activeWhen)
		return &sig, nil
	case "dtr":
		sig := Dtr(activeWhen)
		return &sig, nil
	}
	if s == "none" {
		return nil, nil
	}
	return nil, fmt.Errorf("incorrect signal format: %q", s)
}

// SignalScheme maps the logical reset and boot lines onto physical
// outputs. A nil binding leaves that line untouched.
//
// The default scheme wires reset to RTS active-high and boot to DTR
// active-low. That is a policy choice matching common adapter boards,
// not a protocol requirement; override it per probe when a board is
// wired differently.
type SignalScheme struct {
	reset *Signal
	boot  *Signal
}

// DefaultSignalScheme returns the default reset/boot wiring.
func DefaultSignalScheme() SignalScheme {
	reset := Rts(true)
	boot := Dtr(false)
	return SignalScheme{reset: &reset, boot: &boot}
}

// Reset returns the reset binding, or nil when reset is unbound.
func (s SignalScheme) Reset() *Signal {
	return s.reset
}

// Boot returns the boot binding, or nil when boot is unbound.
func (s SignalScheme) Boot() *Signal {
	return s.boot
}

// SignalSchemeBuilder assembles a SignalScheme. The zero value starts
// from the default wiring.
type SignalSchemeBuilder struct {
	inner SignalScheme
	init  bool
}

// NewSignalSchemeBuilder returns a builder seeded with the default
// wiring.
func NewSignalSchemeBuilder() *SignalSchemeBuilder {
	return &SignalSchemeBuilder{inner: DefaultSignalScheme(), init: true}
}

func (b *SignalSchemeBuilder) ensure() {
	if !b.init {
		b.inner = DefaultSignalScheme()
		b.init = true
	}
}

// Reset sets the reset binding; nil unbinds it.
func (b *SignalSchemeBuilder) Reset(signal *Signal) *SignalSchemeBuilder {
	b.ensure()
	b.inner.reset = signal
	return b
}

// Boot sets the boot binding; nil unbinds it.
func (b *SignalSchemeBuilder) Boot(signal *Signal) *SignalSchemeBuilder {
	b.ensure()
	b.inner.boot = signal
	return b
}

// Build returns the assembled scheme.
func (b *SignalSchemeBuilder) Build() SignalScheme {
	b.ensure()
	return b.inner
}
