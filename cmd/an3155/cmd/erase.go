package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stm32kit/go-an3155/protocol"
)

var (
	eraseAll      bool
	eraseBank     int
	erasePages    []int
	eraseExtended bool
)

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase device flash",
	Long: `Erase the whole flash, one bank, or individual pages.

Older bootloaders implement the Erase command, newer ones Extended
Erase; the info command lists which one the target supports. Bank
erase requires Extended Erase.

Examples:
  an3155 -p /dev/ttyUSB0 erase --all
  an3155 -p /dev/ttyUSB0 erase --all --extended
  an3155 -p /dev/ttyUSB0 erase --bank 2
  an3155 -p /dev/ttyUSB0 erase --pages 0,1,2,3`,
	RunE: runErase,
}

func init() {
	rootCmd.AddCommand(eraseCmd)

	eraseCmd.Flags().BoolVar(&eraseAll, "all", false, "erase the whole flash")
	eraseCmd.Flags().IntVar(&eraseBank, "bank", 0, "erase one flash bank (1 or 2)")
	eraseCmd.Flags().IntSliceVar(&erasePages, "pages", nil, "erase individual pages")
	eraseCmd.Flags().BoolVar(&eraseExtended, "extended", false, "use the Extended Erase command")
}

func runErase(cmd *cobra.Command, args []string) error {
	modes := 0
	if eraseAll {
		modes++
	}
	if eraseBank != 0 {
		modes++
	}
	if len(erasePages) > 0 {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("choose exactly one of --all, --bank or --pages")
	}
	if eraseBank != 0 && eraseBank != 1 && eraseBank != 2 {
		return fmt.Errorf("--bank must be 1 or 2")
	}

	prog, err := openTarget()
	if err != nil {
		return err
	}
	defer prog.Close()

	switch {
	case eraseAll && eraseExtended:
		return prog.ExtendedEraseAll()
	case eraseAll:
		return prog.EraseAll()
	case eraseBank != 0:
		return prog.ExtendedEraseBank(eraseBank)
	case eraseExtended:
		pages := make([]protocol.ExtendedPageNo, len(erasePages))
		for i, p := range erasePages {
			if p < 0 || p > 0xFFFF {
				return fmt.Errorf("page %d out of range", p)
			}
			pages[i] = protocol.ExtendedPageNo(p)
		}
		return prog.ExtendedErasePages(pages)
	default:
		pages := make([]protocol.PageNo, len(erasePages))
		for i, p := range erasePages {
			if p < 0 || p > 0xFF {
				return fmt.Errorf("page %d out of range, use --extended for two-byte pages", p)
			}
			pages[i] = protocol.PageNo(p)
		}
		return prog.ErasePages(pages)
	}
}
