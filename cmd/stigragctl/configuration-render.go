package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
)

// configurationRenderCmd represents the configuration render command
var configurationRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the service env file from the current configuration",
	Long: `Render the effective configuration to the env file the service
container is started with.

When the file already exists, the keys whose values change are listed.

Example:
  stigragctl configuration render
  stigragctl configuration render --output /etc/stig-rag/config.env`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := renderConfiguration(output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationRenderCmd)
	configurationRenderCmd.Flags().StringP("output", "o", "config.env", "Path to write the env file to")
}

func renderConfiguration(output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if existing, err := config.ReadEnvFile(output); err == nil {
		changed := cfg.DiffEnv(existing)
		if len(changed) == 0 {
			fmt.Printf("%s is up to date\n", output)
			return nil
		}
		fmt.Printf("Updating %s (changed: %s)\n", output, strings.Join(changed, ", "))
	}

	if err := cfg.WriteEnvFile(output); err != nil {
		return err
	}
	fmt.Printf("Rendered %s\n", output)
	return nil
}
