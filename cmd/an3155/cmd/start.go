package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var goAddress string

var goCmd = &cobra.Command{
	Use:   "go",
	Short: "Start the application at an address",
	Long: `Send the Go command, making the target jump to the application at the
given address. The bootloader stops answering afterwards.

Example:
  an3155 -p /dev/ttyUSB0 go -a 0x08000000`,
	RunE: runGo,
}

func init() {
	rootCmd.AddCommand(goCmd)

	goCmd.Flags().StringVarP(&goAddress, "address", "a", "0x08000000", "application address")
}

func runGo(cmd *cobra.Command, args []string) error {
	address, err := parseAddress(goAddress)
	if err != nil {
		return err
	}
	prog, err := openTarget()
	if err != nil {
		return err
	}
	defer prog.Close()

	if err := prog.Go(address); err != nil {
		return err
	}
	fmt.Printf("started application at 0x%08X\n", address)
	return nil
}
