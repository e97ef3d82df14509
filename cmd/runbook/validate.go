package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationError represents a single validation issue
type ValidationError struct {
	Line    int
	Message string
}

// ValidationResult holds all validation errors
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) AddError(line int, message string) {
	r.Errors = append(r.Errors, ValidationError{Line: line, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the troubleshooting runbook structure",
	Long: `Validate that a troubleshooting runbook follows the expected structure.

Checks include:
- File has a title (# Troubleshooting)
- At least one issue section (## <issue title>)
- Every issue has Symptoms and Resolution subsections
- Subsection names are valid (Symptoms, Cause, Resolution, Verification)
- Symptoms and Resolution subsections are not empty
- Issue titles are unique`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		result := Validate(content)

		if result.IsValid() {
			fmt.Println("✓ Runbook is valid")
			return nil
		}

		fmt.Printf("Found %d issue(s):\n\n", len(result.Errors))
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Printf("  Line %d: %s\n", e.Line, e.Message)
			} else {
				fmt.Printf("  %s\n", e.Message)
			}
		}

		os.Exit(1)
		return nil
	},
}

var requiredSections = []string{"Symptoms", "Resolution"}

var validSections = map[string]bool{
	"Symptoms":     true,
	"Cause":        true,
	"Resolution":   true,
	"Verification": true,
}

// Validate checks a runbook against the expected structure
func Validate(source []byte) *ValidationResult {
	result := &ValidationResult{}
	lines := strings.Split(string(source), "\n")

	hasTitle := false
	titles := make(map[string]int)

	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		// Check for title
		if strings.HasPrefix(trimmed, "# ") {
			hasTitle = true
			if !strings.Contains(strings.ToLower(trimmed), "troubleshooting") {
				result.AddError(lineNum, "Title should contain 'Troubleshooting'")
			}
		}

		// Check for duplicate issue titles
		if strings.HasPrefix(trimmed, "## ") {
			title := strings.TrimPrefix(trimmed, "## ")
			if firstLine, seen := titles[title]; seen {
				result.AddError(lineNum, fmt.Sprintf("Duplicate issue title '%s' (first seen on line %d)", title, firstLine))
			} else {
				titles[title] = lineNum
			}
		}

		// Check subsection headers
		if strings.HasPrefix(trimmed, "### ") {
			section := strings.TrimPrefix(trimmed, "### ")
			if !validSections[section] {
				result.AddError(lineNum, fmt.Sprintf("Invalid section '%s'. Valid sections: Symptoms, Cause, Resolution, Verification", section))
			}
		}
	}

	if !hasTitle {
		result.AddError(0, "Missing runbook title (# Troubleshooting)")
	}

	runbook, _ := Parse(source)
	if runbook == nil {
		return result
	}

	if len(runbook.Issues) == 0 {
		result.AddError(0, "Runbook has no issue sections")
	}

	for _, issue := range runbook.Issues {
		for _, section := range requiredSections {
			content, ok := issue.Sections[section]
			if !ok {
				result.AddError(0, fmt.Sprintf("Issue '%s' is missing a %s section", issue.Title, section))
				continue
			}
			if content == "" {
				result.AddError(0, fmt.Sprintf("Issue '%s' has an empty %s section", issue.Title, section))
			}
		}
	}

	return result
}

func init() {
	validateCmd.Flags().StringP("file", "f", "docs/TROUBLESHOOTING.md", "Path to the runbook file")
	rootCmd.AddCommand(validateCmd)
}
