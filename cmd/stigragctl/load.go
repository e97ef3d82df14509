package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a STIG document into the service",
	Long: `Load a STIG document into the service.

The path is resolved on this host and must be visible to the service
process. For containerized deployments, copy the file into the container
first (stigragctl deploy does this for the bundled samples) and pass the
container path.

Supported formats: .json (structured controls) and .xml (XCCDF benchmark).

Example:
  stigragctl load /opt/stig-rag/data/sample_rhel9_stig.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := serviceClient(cmd)
		resp, err := svc.LoadSTIG(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(resp.Message)
		fmt.Printf("Chunks created: %d\n", resp.ChunksCreated)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	addURLFlag(loadCmd)
}
