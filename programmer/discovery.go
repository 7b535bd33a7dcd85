package programmer

import (
	"go.uber.org/zap"
)

// Discover probes every serial endpoint visible to the host and
// returns a programmer for each one that identifies as an
// AN3155-compliant device. Endpoints that cannot be opened or
// identified are skipped silently; a line occupied by another process
// or a non-bootloader device is the normal case, not a failure.
func Discover(probe *Probe) ([]*Programmer, error) {
	endpoints, err := listPorts()
	if err != nil {
		return nil, err
	}
	log := probe.Logger()
	var found []*Programmer
	for _, endpoint := range endpoints {
		p, err := Open(endpoint, probe)
		if err != nil {
			log.Debug("endpoint skipped",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			continue
		}
		found = append(found, p)
	}
	return found, nil
}
