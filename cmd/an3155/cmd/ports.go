package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stm32kit/go-an3155/programmer"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial endpoints without probing them",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoints, err := programmer.Ports()
		if err != nil {
			return err
		}
		for _, e := range endpoints {
			fmt.Println(e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
