package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <stig-id>",
	Short: "Look up STIG controls by ID",
	Long: `Look up STIG controls by their DISA identifier.

Example:
  stigragctl search RHEL-09-211010`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		stigID := args[0]

		svc := serviceClient(cmd)
		resp, err := svc.SearchByID(context.Background(), stigID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}

		if len(resp.Results) == 0 {
			fmt.Printf("No controls found for %s\n", resp.StigID)
			return
		}

		fmt.Printf("Found %d result(s) for %s:\n", len(resp.Results), resp.StigID)
		for i, result := range resp.Results {
			fmt.Printf("\n--- Result %d ---\n%s\n", i+1, result.Content)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addURLFlag(searchCmd)
}
