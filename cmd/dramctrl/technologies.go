package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/dramctrl/technology"
)

var technologiesCmd = &cobra.Command{
	Use:   "technologies",
	Short: "List the DRAM technologies that can be simulated",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range technology.DefaultRegistry().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}
