package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "dramctrl",
	Short: "Cycle-driven DRAM memory controller simulator",
	Long: `dramctrl drives simulated cores against one or more memory ` +
		`controllers, each backed by a DRAM timing model, and writes the ` +
		`request latency statistics of every controller to a stats file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		logrus.SetLevel(level)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(technologiesCmd)
}

// Execute runs the root command. Registered exit handlers run before the
// process exits.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
