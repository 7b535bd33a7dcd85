package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stm32kit/go-an3155/programmer"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Probe every serial endpoint for a bootloader device",
	Long: `Probe every serial endpoint visible to the host and report the ones
behind which an STM32 USART bootloader answers. Endpoints that are
busy, silent or occupied by other devices are skipped.

Examples:
  an3155 discover
  an3155 discover --reset none --boot none --identify get`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	probe, err := buildProbe()
	if err != nil {
		return err
	}
	found, err := programmer.Discover(probe)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("no devices found")
		return nil
	}
	for _, prog := range found {
		info, err := prog.ReadBootloader()
		if err != nil {
			fmt.Printf("%s\n", prog.Endpoint())
		} else {
			fmt.Printf("%s\tbootloader %s\n", prog.Endpoint(), info.VersionString())
		}
		prog.Close()
	}
	return nil
}
