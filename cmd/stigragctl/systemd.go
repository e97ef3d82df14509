package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// systemdCmd represents the systemd command
var systemdCmd = &cobra.Command{
	Use:   "systemd",
	Short: "Manage systemd Quadlet units for the service",
	Long: `Manage systemd Quadlet units so the service container is started at
boot and restarted on failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'systemd' requires a subcommand (install, uninstall)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(systemdCmd)
}
