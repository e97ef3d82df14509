package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// dataCmd represents the data command
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage STIG data files",
	Long:  `Generate sample STIG data or download official DISA benchmarks.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'data' requires a subcommand (sample, download)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(dataCmd)
}
