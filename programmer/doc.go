// Package programmer provides a high-level API for driving
// STM32 devices running the built-in USART bootloader.
//
// # Overview
//
// This package owns the transport side of the protocol:
//   - Opening and configuring the serial connection (8E1 framing)
//   - Driving the reset and boot lines through modem-control signals
//   - Identifying a device via the baudrate handshake, with retries
//   - Running reliable command exchanges and decoding responses
//   - Discovering compliant devices across all visible endpoints
//
// Wire encoding lives in the protocol package; this package moves the
// resulting frames over the line and enforces the acknowledgment
// discipline.
//
// # Basic Usage
//
// Open a known endpoint and read device information:
//
//	probe := programmer.DefaultProbe()
//	prog, err := programmer.Open("/dev/ttyUSB0", &probe)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer prog.Close()
//
//	info, err := prog.ReadBootloader()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("bootloader", info.VersionString())
//
// # Probing
//
// A Probe captures everything needed to reach a device: baudrate,
// reset/boot wiring, pulse duration, retry budget, read timeout and
// identification strategy. Build a custom one when the defaults do
// not match the board:
//
//	probe := programmer.NewProbeBuilder().
//	    Baudrate(57600).
//	    SignalReset(nil). // reset wired externally
//	    MaxAttempts(3).
//	    Build()
//
// # Discovery
//
// Discover probes every serial endpoint on the host and returns a
// programmer for each device that completes identification:
//
//	found, err := programmer.Discover(&probe)
//	for _, prog := range found {
//	    fmt.Println(prog.Endpoint())
//	}
package programmer
