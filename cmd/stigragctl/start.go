package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stopped service container",
	Run: func(cmd *cobra.Command, args []string) {
		name := config.Get().ContainerName
		if err := podman.NewClient().Start(context.Background(), name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Started %s\n", name)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
