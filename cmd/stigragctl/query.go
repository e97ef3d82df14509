package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/model"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask the service a STIG question",
	Long: `Ask the service a STIG compliance question.

When the question mentions a STIG ID (e.g. RHEL-09-211010), that ID is
passed along so the answer focuses on the matching control and RHEL
version.

Example:
  stigragctl query "How do I configure SSH on RHEL 9?"
  stigragctl query --rhel-version 8 "password complexity requirements"
  stigragctl query --stig-id RHEL-09-211010 "what does this control require?"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		stigID, _ := cmd.Flags().GetString("stig-id")
		rhelVersion, _ := cmd.Flags().GetString("rhel-version")
		showSources, _ := cmd.Flags().GetBool("sources")

		question := strings.Join(args, " ")
		if stigID == "" {
			stigID = model.ExtractStigID(question)
		}

		svc := serviceClient(cmd)
		resp, err := svc.Query(context.Background(), question, stigID, rhelVersion)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("RHEL focus: %s\n\n", resp.RHELVersionFocus)
		fmt.Println(resp.Answer)

		if showSources && len(resp.Sources) > 0 {
			fmt.Printf("\nSources (%d):\n", len(resp.Sources))
			for i, source := range resp.Sources {
				fmt.Printf("\n--- Source %d ---\n%s\n", i+1, source.Content)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().String("stig-id", "", "STIG control ID to focus on (default: extracted from the question)")
	queryCmd.Flags().String("rhel-version", "", "RHEL version to focus on (8 or 9)")
	queryCmd.Flags().BoolP("sources", "s", false, "Show the retrieved source fragments")
	addURLFlag(queryCmd)
}
