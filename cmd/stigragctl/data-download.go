package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stigdata"
)

// dataDownloadCmd represents the data download command
var dataDownloadCmd = &cobra.Command{
	Use:   "download [source...]",
	Short: "Download official DISA STIG benchmarks",
	Long: `Download official DISA STIG benchmark archives. With no arguments all
known sources are fetched, RHEL 9 first.

Available sources: ` + strings.Join(stigdata.SourceNames(), ", ") + `

Example:
  stigragctl data download
  stigragctl data download rhel9 --out-dir /opt/stig-rag/data --extract`,
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out-dir")
		extract, _ := cmd.Flags().GetBool("extract")

		names := args
		if len(names) == 0 {
			names = stigdata.SourceNames()
		}

		if err := downloadSources(names, outDir, extract); err != nil {
			fmt.Fprintf(os.Stderr, "Download failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dataCmd.AddCommand(dataDownloadCmd)
	dataDownloadCmd.Flags().StringP("out-dir", "o", ".", "Directory to download archives to")
	dataDownloadCmd.Flags().Bool("extract", false, "Extract XCCDF XML files from the archives")
}

func downloadSources(names []string, outDir string, extract bool) error {
	ctx := context.Background()
	downloader := stigdata.NewDownloader()

	for _, name := range names {
		fmt.Printf("Downloading %s STIG...\n", name)
		archive, err := downloader.Download(ctx, name, outDir)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", archive)

		if !extract {
			continue
		}

		xmlFiles, err := stigdata.Extract(archive)
		if err != nil {
			return err
		}
		for _, file := range xmlFiles {
			fmt.Printf("Extracted %s\n", file)
		}
	}
	return nil
}
