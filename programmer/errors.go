package programmer

import (
	"errors"
	"fmt"
)

var (
	// ErrNAck reports that the target rejected a reliable exchange
	// with a negative acknowledgment.
	ErrNAck = errors.New("negative ack")

	// ErrBusy reports that the target answered a reliable exchange
	// with a transient busy reply.
	ErrBusy = errors.New("target busy")

	// ErrUnidentified reports that the identification handshake
	// exhausted its retry budget without a compliant response.
	ErrUnidentified = errors.New("cannot identify device")

	// ErrTimeout reports an expired read deadline on the serial line.
	ErrTimeout = errors.New("read timed out")
)

// OpenError reports a failed connection establishment on an endpoint.
type OpenError struct {
	Endpoint string
	Err      error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Endpoint, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
