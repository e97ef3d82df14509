package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stigdata"
)

// dataSampleCmd represents the data sample command
var dataSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write bundled sample STIG documents",
	Long: `Write the bundled RHEL 8 and RHEL 9 sample STIG documents to disk.

With --load, each written document is also submitted to the service for
ingestion. The paths must be visible to the service process, which is the
case for the stub server and for containers sharing the target directory.

Example:
  stigragctl data sample
  stigragctl data sample --out-dir /opt/stig-rag/data --load`,
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out-dir")
		load, _ := cmd.Flags().GetBool("load")

		paths, err := stigdata.WriteSamples(outDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write sample data: %v\n", err)
			os.Exit(1)
		}
		for _, path := range paths {
			fmt.Printf("Wrote %s\n", path)
		}

		if !load {
			return
		}

		svc := serviceClient(cmd)
		for _, path := range paths {
			resp, err := svc.LoadSTIG(context.Background(), path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
				os.Exit(1)
			}
			fmt.Printf("Loaded %s (%d chunks)\n", path, resp.ChunksCreated)
		}
	},
}

func init() {
	dataCmd.AddCommand(dataSampleCmd)
	dataSampleCmd.Flags().StringP("out-dir", "o", ".", "Directory to write the sample documents to")
	dataSampleCmd.Flags().Bool("load", false, "Also submit the documents to the service")
	addURLFlag(dataSampleCmd)
}
