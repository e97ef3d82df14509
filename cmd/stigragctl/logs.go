package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show service container logs",
	Long: `Show logs from the service container.

Example:
  stigragctl logs
  stigragctl logs --follow --tail 100`,
	Run: func(cmd *cobra.Command, args []string) {
		follow, _ := cmd.Flags().GetBool("follow")
		tail, _ := cmd.Flags().GetString("tail")

		name := config.Get().ContainerName
		if err := podman.NewClient().Logs(context.Background(), name, follow, tail); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get logs for %s: %v\n", name, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().String("tail", "", "Number of lines to show from the end")
}
