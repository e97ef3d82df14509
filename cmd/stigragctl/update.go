package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the deployment to the current image and configuration",
	Long: `Replace the running container with one started from the current image
and configuration. The data volume is preserved, so previously loaded STIG
data survives the update.

Use --build to rebuild the image from the local Containerfile first, or
--pull to fetch a newer image from its registry; otherwise the image is
used as is.

Example:
  stigragctl update --build
  stigragctl update --pull`,
	Run: func(cmd *cobra.Command, args []string) {
		pull, _ := cmd.Flags().GetBool("pull")
		build, _ := cmd.Flags().GetBool("build")
		envFile, _ := cmd.Flags().GetString("env-file")
		retries, _ := cmd.Flags().GetInt("retries")
		interval, _ := cmd.Flags().GetDuration("interval")

		cfg := config.Get()
		ctx := context.Background()
		if build {
			fmt.Printf("Building image %s...\n", cfg.Image)
			if err := podman.NewClient().Build(ctx, cfg.Image, "Containerfile", "."); err != nil {
				fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
				os.Exit(1)
			}
		}
		if pull {
			fmt.Printf("Pulling %s...\n", cfg.Image)
			if err := podman.NewClient().Pull(ctx, cfg.Image); err != nil {
				fmt.Fprintf(os.Stderr, "Pull failed: %v\n", err)
				os.Exit(1)
			}
		}

		// Data already lives in the volume; skip the sample load.
		if err := runDeploy(envFile, retries, interval, true); err != nil {
			fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Bool("pull", false, "Pull the image before redeploying")
	updateCmd.Flags().Bool("build", false, "Rebuild the image before redeploying")
	updateCmd.Flags().String("env-file", "config.env", "Path to render the service env file to")
	updateCmd.Flags().IntP("retries", "r", 30, "Health check attempts before giving up")
	updateCmd.Flags().Duration("interval", 2*time.Second, "Delay between health checks")
}
