package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stm32kit/go-an3155/programmer"
	"github.com/stm32kit/go-an3155/protocol"
)

var protectSectors []int

var protectCmd = &cobra.Command{
	Use:   "protect",
	Short: "Manage flash protection",
	Long: `Enable or disable write and readout protection.

Disabling either protection mass-erases the flash and resets the
target, so the connection must be reopened afterwards.

Examples:
  an3155 -p /dev/ttyUSB0 protect write --sectors 0,1
  an3155 -p /dev/ttyUSB0 protect unwrite
  an3155 -p /dev/ttyUSB0 protect readout
  an3155 -p /dev/ttyUSB0 protect unreadout`,
}

var protectWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Enable write protection on sectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(protectSectors) == 0 {
			return fmt.Errorf("--sectors is required")
		}
		sectors := make([]protocol.SectorNo, len(protectSectors))
		for i, s := range protectSectors {
			if s < 0 || s > 0xFFFF {
				return fmt.Errorf("sector %d out of range", s)
			}
			sectors[i] = protocol.SectorNo(s)
		}
		return withTarget(func(prog *programmer.Programmer) error {
			return prog.WriteProtect(sectors)
		})
	},
}

var protectUnwriteCmd = &cobra.Command{
	Use:   "unwrite",
	Short: "Disable write protection on the whole flash",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTarget(func(prog *programmer.Programmer) error {
			return prog.WriteUnprotect()
		})
	},
}

var protectReadoutCmd = &cobra.Command{
	Use:   "readout",
	Short: "Enable readout protection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTarget(func(prog *programmer.Programmer) error {
			return prog.ReadoutProtect()
		})
	},
}

var protectUnreadoutCmd = &cobra.Command{
	Use:   "unreadout",
	Short: "Disable readout protection (mass-erases the flash)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTarget(func(prog *programmer.Programmer) error {
			return prog.ReadoutUnprotect()
		})
	},
}

func init() {
	rootCmd.AddCommand(protectCmd)
	protectCmd.AddCommand(protectWriteCmd, protectUnwriteCmd, protectReadoutCmd, protectUnreadoutCmd)

	protectWriteCmd.Flags().IntSliceVar(&protectSectors, "sectors", nil, "sectors to write-protect")
}
