package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	readAddress string
	readLength  int
	readOutput  string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read device memory",
	Long: `Read memory from the device, starting at the given address. Larger
reads are split into 256-byte bootloader transactions transparently.

The result is hex-dumped to stdout, or written raw to a file with -o.

Examples:
  an3155 -p /dev/ttyUSB0 read -a 0x08000000 -n 1024
  an3155 -p /dev/ttyUSB0 read -a 0x08000000 -n 65536 -o flash.bin`,
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().StringVarP(&readAddress, "address", "a", "0x08000000", "start address")
	readCmd.Flags().IntVarP(&readLength, "length", "n", 256, "number of bytes to read")
	readCmd.Flags().StringVarP(&readOutput, "output", "o", "", "write raw bytes to file instead of hex-dumping")
	readCmd.MarkFlagRequired("length")
}

func runRead(cmd *cobra.Command, args []string) error {
	address, err := parseAddress(readAddress)
	if err != nil {
		return err
	}
	if readLength <= 0 {
		return fmt.Errorf("--length must be positive")
	}

	prog, err := openTarget()
	if err != nil {
		return err
	}
	defer prog.Close()

	data := make([]byte, 0, readLength)
	for offset := 0; offset < readLength; offset += 256 {
		n := readLength - offset
		if n > 256 {
			n = 256
		}
		chunk, err := prog.ReadMemory(address+uint32(offset), n)
		if err != nil {
			return fmt.Errorf("read at 0x%08X: %w", address+uint32(offset), err)
		}
		data = append(data, chunk...)
	}

	if readOutput != "" {
		return os.WriteFile(readOutput, data, 0644)
	}
	fmt.Print(hex.Dump(data))
	return nil
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("cannot parse address %q", s)
	}
	return uint32(v), nil
}
