package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running service container",
	Run: func(cmd *cobra.Command, args []string) {
		name := config.Get().ContainerName
		if err := podman.NewClient().Stop(context.Background(), name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to stop %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Stopped %s\n", name)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
