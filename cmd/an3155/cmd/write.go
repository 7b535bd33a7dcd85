package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeAddress string
	writeVerify  bool
)

var writeCmd = &cobra.Command{
	Use:   "write <file>",
	Short: "Write a binary file into device memory",
	Long: `Write the contents of a raw binary file into device memory, starting
at the given address. The file is split into 256-byte bootloader
transactions transparently. With --verify each chunk is read back and
compared.

The target region must be erased first; see the erase command.

Examples:
  an3155 -p /dev/ttyUSB0 write -a 0x08000000 firmware.bin
  an3155 -p /dev/ttyUSB0 write -a 0x08000000 --verify firmware.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)

	writeCmd.Flags().StringVarP(&writeAddress, "address", "a", "0x08000000", "start address")
	writeCmd.Flags().BoolVar(&writeVerify, "verify", false, "read back and compare every chunk")
}

func runWrite(cmd *cobra.Command, args []string) error {
	address, err := parseAddress(writeAddress)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s is empty", args[0])
	}

	prog, err := openTarget()
	if err != nil {
		return err
	}
	defer prog.Close()

	for offset := 0; offset < len(data); offset += 256 {
		end := offset + 256
		if end > len(data) {
			end = len(data)
		}
		chunk := data[offset:end]
		at := address + uint32(offset)
		if err := prog.WriteMemory(at, chunk); err != nil {
			return fmt.Errorf("write at 0x%08X: %w", at, err)
		}
		if writeVerify {
			back, err := prog.ReadMemory(at, len(chunk))
			if err != nil {
				return fmt.Errorf("verify at 0x%08X: %w", at, err)
			}
			if !bytes.Equal(back, chunk) {
				return fmt.Errorf("verify at 0x%08X: mismatch", at)
			}
		}
	}
	fmt.Printf("wrote %d bytes at 0x%08X\n", len(data), address)
	return nil
}
