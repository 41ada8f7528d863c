package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "channel-control",
	Short: "Channel control: encoder channel API, alert event worker",
	Long:  `HTTP control-plane for live encoder channels. Commands: api, worker, command, seed.`,
	RunE:  runAPI, // default: run API (same as "channel-control api")
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the root command and returns the error (for main to log.Fatal).
func Execute() error {
	return rootCmd.Execute()
}
