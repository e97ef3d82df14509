package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the service to be ready",
	Long: `Wait for the service to be ready by polling the health endpoint.

This command will repeatedly check the service health until it reports
healthy or the maximum number of retries is reached.

Example:
  stigragctl wait
  stigragctl wait --retries 60 --interval 5s`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")
		interval, _ := cmd.Flags().GetDuration("interval")

		svc := serviceClient(cmd)
		fmt.Printf("Waiting for the service at %s to be ready...\n", svc.BaseURL())

		err := svc.WaitReady(context.Background(), retries, interval, func() { fmt.Print(".") })
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Service did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Service is ready!")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("retries", "r", 30, "Number of retries")
	waitCmd.Flags().Duration("interval", 2*time.Second, "Delay between retries")
	addURLFlag(waitCmd)
}
