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

// configurationApplyCmd represents the configuration apply command
var configurationApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Re-render the env file and restart the service to apply it",
	Long: `Validate the current state of the configuration, re-render the env
file, and restart the service container to pick up the changes.

Use --test to validate configuration without restarting.

Example:
  stigragctl configuration apply
  stigragctl configuration apply --test`,
	Run: func(cmd *cobra.Command, args []string) {
		testMode, _ := cmd.Flags().GetBool("test")
		envFile, _ := cmd.Flags().GetString("env-file")

		if err := applyConfiguration(envFile, testMode); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to apply configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationApplyCmd)
	configurationApplyCmd.Flags().Bool("test", false, "Validate configuration without restarting")
	configurationApplyCmd.Flags().String("env-file", "config.env", "Path of the rendered env file")
}

func applyConfiguration(envFile string, testMode bool) error {
	fmt.Println("Validating configuration...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("Config file: %s\n", cfg.ConfigFilePath())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Println("Configuration is valid.")

	if testMode {
		fmt.Println("Test mode: not restarting the service.")
		return nil
	}

	ctx := context.Background()
	exists, err := podman.NewClient().ContainerExists(ctx, cfg.ContainerName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no container named %s; run 'stigragctl deploy' first", cfg.ContainerName)
	}

	// podman fixes the environment at container creation, so applying the
	// env file means replacing the container. Data lives in the volume.
	return runDeploy(envFile, 30, 2*time.Second, true)
}
