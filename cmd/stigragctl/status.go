package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/client"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show deployment and service status",
	Long: `Show the host platform, container state, and service health.

Example:
  stigragctl status`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showStatus(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get status: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func showStatus() error {
	ctx := context.Background()
	cfg := config.Get()
	platform := podman.DetectPlatform()

	fmt.Printf("Host:       %s\n", platform.Describe())
	fmt.Printf("Image:      %s\n", cfg.Image)
	fmt.Printf("Container:  %s\n", cfg.ContainerName)
	fmt.Printf("Volume:     %s\n", cfg.DataVolume)
	fmt.Printf("URL:        %s\n", cfg.BaseURL())

	state, err := podman.NewClient().State(ctx, cfg.ContainerName)
	if err != nil {
		return err
	}
	fmt.Printf("State:      %s\n", state)

	if state != "running" {
		return nil
	}

	health, err := client.New(cfg.BaseURL()).Health(ctx)
	if err != nil {
		fmt.Printf("Health:     unreachable (%v)\n", err)
		return nil
	}
	fmt.Printf("Health:     %s (as of %s)\n", health.Status, health.Timestamp)
	return nil
}
