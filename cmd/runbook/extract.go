package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a troubleshooting issue",
	Long:  `Extract the full entry for a troubleshooting issue, matched by title substring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		query, _ := cmd.Flags().GetString("issue")

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		runbook, err := Parse(content)
		if err != nil {
			return fmt.Errorf("parsing runbook: %w", err)
		}

		issue := runbook.FindIssue(query)
		if issue == nil {
			return fmt.Errorf("no issue matching %q found in runbook", query)
		}

		fmt.Printf("## %s\n", issue.Title)
		for _, section := range []string{"Symptoms", "Cause", "Resolution", "Verification"} {
			if body, ok := issue.Sections[section]; ok {
				fmt.Printf("\n### %s\n\n%s\n", section, body)
			}
		}

		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all issues in the runbook",
	Long:  `List all troubleshooting issue titles found in the runbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		runbook, err := Parse(content)
		if err != nil {
			return fmt.Errorf("parsing runbook: %w", err)
		}

		for _, issue := range runbook.Issues {
			fmt.Println(issue.Title)
		}

		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("file", "f", "docs/TROUBLESHOOTING.md", "Path to the runbook file")
	extractCmd.Flags().StringP("issue", "i", "", "Issue title to show (substring match)")
	_ = extractCmd.MarkFlagRequired("issue")

	listCmd.Flags().StringP("file", "f", "docs/TROUBLESHOOTING.md", "Path to the runbook file")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
}
