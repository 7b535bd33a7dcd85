package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stm32kit/go-an3155/programmer"
	"github.com/stm32kit/go-an3155/protocol"
)

var (
	// Global flags
	endpoint    string
	baudrate    int
	resetSignal string
	bootSignal  string
	resetFor    time.Duration
	attempts    int
	timeout     time.Duration
	identifyVia string
	extended    bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "an3155",
	Short: "STM32 USART bootloader client",
	Long: `A host-side client for the STM32 built-in USART bootloader.

It drives the reset and boot pins through the serial adapter's RTS and
DTR lines, identifies the device, and runs the bootloader commands:
reading device information, reading and writing memory, erasing flash,
managing protection and starting the application.

Examples:
  an3155 discover                                  # Probe every serial endpoint
  an3155 -p /dev/ttyUSB0 info                      # Show bootloader and chip info
  an3155 -p /dev/ttyUSB0 read -a 0x08000000 -n 256 # Dump flash
  an3155 -p /dev/ttyUSB0 write -a 0x08000000 firmware.bin
  an3155 -p /dev/ttyUSB0 erase --all               # Mass erase
  an3155 -p /dev/ttyUSB0 go -a 0x08000000          # Start the application`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&endpoint, "port", "p", "", "serial endpoint (e.g. /dev/ttyUSB0)")
	pf.IntVarP(&baudrate, "baudrate", "b", 115200, "baudrate for probing and transfers")
	pf.StringVar(&resetSignal, "reset", "rts", "reset wiring: rts, dtr, !rts, !dtr or none")
	pf.StringVar(&bootSignal, "boot", "!dtr", "boot wiring: rts, dtr, !rts, !dtr or none")
	pf.DurationVar(&resetFor, "reset-for", 10*time.Millisecond, "how long the reset pulse holds the line")
	pf.IntVar(&attempts, "attempts", 8, "identification attempts before giving up")
	pf.DurationVar(&timeout, "timeout", 100*time.Millisecond, "per-read timeout on the serial line")
	pf.StringVar(&identifyVia, "identify", "handshake", "identification strategy: handshake or get")
	pf.BoolVar(&extended, "extended", false, "decode the extended reply set (targets that report BUSY)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// buildProbe assembles a probe from the global flags.
func buildProbe() (*programmer.Probe, error) {
	reset, err := programmer.ParseSignal(resetSignal)
	if err != nil {
		return nil, fmt.Errorf("--reset: %w", err)
	}
	boot, err := programmer.ParseSignal(bootSignal)
	if err != nil {
		return nil, fmt.Errorf("--boot: %w", err)
	}

	b := programmer.NewProbeBuilder().
		Baudrate(baudrate).
		SignalReset(reset).
		SignalBoot(boot).
		ResetFor(resetFor).
		MaxAttempts(attempts).
		Timeout(timeout)

	switch identifyVia {
	case "handshake":
		b.Identify(programmer.IdentifyHandshake)
	case "get":
		b.Identify(programmer.IdentifyGet)
	default:
		return nil, fmt.Errorf("--identify: unknown strategy %q", identifyVia)
	}
	if extended {
		b.Revision(protocol.RevisionExtended)
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		b.Logger(logger)
	}

	probe := b.Build()
	return &probe, nil
}

// openTarget opens and identifies the device on the --port endpoint.
func openTarget() (*programmer.Programmer, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("no endpoint given, use --port or discover")
	}
	probe, err := buildProbe()
	if err != nil {
		return nil, err
	}
	return programmer.Open(endpoint, probe)
}

// withTarget runs fn against the opened device and closes it after.
func withTarget(fn func(prog *programmer.Programmer) error) error {
	prog, err := openTarget()
	if err != nil {
		return err
	}
	defer prog.Close()
	return fn(prog)
}
