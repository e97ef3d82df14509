package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the service container image",
	Long: `Build the service container image with podman.

Example:
  stigragctl build
  stigragctl build --file Containerfile --context . --tag localhost/stig-rag:dev`,
	Run: func(cmd *cobra.Command, args []string) {
		containerfile, _ := cmd.Flags().GetString("file")
		contextDir, _ := cmd.Flags().GetString("context")
		tag, _ := cmd.Flags().GetString("tag")

		if tag == "" {
			tag = config.Get().Image
		}

		fmt.Printf("Building image %s...\n", tag)
		if err := podman.NewClient().Build(context.Background(), tag, containerfile, contextDir); err != nil {
			fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Built %s\n", tag)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("file", "f", "Containerfile", "Containerfile to build from")
	buildCmd.Flags().StringP("context", "c", ".", "Build context directory")
	buildCmd.Flags().StringP("tag", "t", "", "Image tag (default: configured image)")
}
