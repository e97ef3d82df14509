package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/client"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "stigragctl",
	Short: "Deploy and manage the RHEL STIG RAG service",
	Long: `stigragctl deploys and manages the containerized RHEL STIG RAG service.

It wraps podman for container lifecycle management, adapts to host quirks
(cgroups v1/v2, SELinux, rootless), renders the service configuration, and
can install systemd Quadlet units for boot-time management.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// serviceClient returns a client for the deployed service, honoring the
// command's --url flag when set.
func serviceClient(cmd *cobra.Command) *client.Client {
	url, _ := cmd.Flags().GetString("url")
	if url == "" {
		url = config.Get().BaseURL()
	}
	return client.New(url)
}

func addURLFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", "", "Service URL (default: derived from configuration)")
}
