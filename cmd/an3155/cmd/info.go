package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show bootloader version, supported commands and chip ID",
	Long: `Identify the device and print what the bootloader reports about
itself: protocol version, the command set it supports, the version
and option bytes, and the product ID.

Example:
  an3155 -p /dev/ttyUSB0 info`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	prog, err := openTarget()
	if err != nil {
		return err
	}
	defer prog.Close()

	info, err := prog.ReadBootloader()
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	fmt.Printf("Bootloader version: %s\n", info.VersionString())
	fmt.Println("Supported commands:")
	for _, op := range info.Opcodes() {
		fmt.Printf("  0x%02X  %s\n", byte(op), op)
	}

	version, err := prog.ReadVersion()
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	opts := version.Options()
	fmt.Printf("Option bytes: 0x%02X 0x%02X\n", opts[0], opts[1])

	id, err := prog.ReadID()
	if err != nil {
		return fmt.Errorf("get id: %w", err)
	}
	fmt.Printf("Product ID: %s\n", id)
	return nil
}
