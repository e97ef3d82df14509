package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// restartCmd represents the restart command
var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the service container",
	Run: func(cmd *cobra.Command, args []string) {
		name := config.Get().ContainerName
		if err := podman.NewClient().Restart(context.Background(), name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restart %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Restarted %s\n", name)
	},
}

func init() {
	rootCmd.AddCommand(restartCmd)
}
