package protocol

import "fmt"

// Reply is a single-byte acknowledgment-class response. Every reliable
// exchange produces exactly one Reply.
type Reply byte

const (
	Ack  Reply = 0x79
	NAck Reply = 0x1F
	Busy Reply = 0xAA
)

func (r Reply) String() string {
	switch r {
	case Ack:
		return "ACK"
	case NAck:
		return "NACK"
	case Busy:
		return "BUSY"
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", byte(r))
}

// Revision selects the acknowledgment vocabulary of the target
// protocol revision. Legacy targets answer Ack/NAck only; extended
// targets may additionally report Busy. The protocol documents no
// selection rule, so the choice belongs to the probe configuration.
type Revision int

const (
	// RevisionLegacy decodes the two-way Ack/NAck reply set.
	RevisionLegacy Revision = iota

	// RevisionExtended decodes the three-way Ack/NAck/Busy reply set.
	RevisionExtended
)

// DecodeReply interprets one reply byte under the given revision. Any
// byte outside the revision's reply set is a decode failure, never an
// implicit Ack.
func DecodeReply(b byte, rev Revision) (Reply, error) {
	switch {
	case b == byte(Ack):
		return Ack, nil
	case b == byte(NAck):
		return NAck, nil
	case b == byte(Busy) && rev == RevisionExtended:
		return Busy, nil
	}
	return 0, &DecodeError{What: "reply", Byte: b}
}
