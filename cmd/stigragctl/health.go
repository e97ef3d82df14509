package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	Run: func(cmd *cobra.Command, args []string) {
		svc := serviceClient(cmd)
		health, err := svc.Health(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Status:    %s\n", health.Status)
		fmt.Printf("Timestamp: %s\n", health.Timestamp)
		if !health.Healthy() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	addURLFlag(healthCmd)
}
