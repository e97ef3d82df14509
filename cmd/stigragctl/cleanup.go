package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove the service container and optionally its data",
	Long: `Remove the service container. The data volume and image are kept
unless requested.

Example:
  stigragctl cleanup
  stigragctl cleanup --volumes --image`,
	Run: func(cmd *cobra.Command, args []string) {
		removeVolumes, _ := cmd.Flags().GetBool("volumes")
		removeImage, _ := cmd.Flags().GetBool("image")

		if err := runCleanup(removeVolumes, removeImage); err != nil {
			fmt.Fprintf(os.Stderr, "Cleanup failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().Bool("volumes", false, "Also remove the data volume")
	cleanupCmd.Flags().Bool("image", false, "Also remove the service image")
}

func runCleanup(removeVolumes, removeImage bool) error {
	ctx := context.Background()
	cfg := config.Get()
	pd := podman.NewClient()

	exists, err := pd.ContainerExists(ctx, cfg.ContainerName)
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("Removing container %s\n", cfg.ContainerName)
		if err := pd.Remove(ctx, cfg.ContainerName, true); err != nil {
			return err
		}
	}

	if removeVolumes {
		fmt.Printf("Removing volume %s\n", cfg.DataVolume)
		if err := pd.VolumeRemove(ctx, cfg.DataVolume); err != nil {
			return err
		}
	}

	if removeImage {
		fmt.Printf("Removing image %s\n", cfg.Image)
		if err := pd.ImageRemove(ctx, cfg.Image); err != nil {
			return err
		}
	}

	fmt.Println("Cleanup complete")
	return nil
}
