package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runbook",
	Short: "Troubleshooting runbook parser and validator",
	Long:  `A tool for parsing and validating the deployment troubleshooting runbook.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
