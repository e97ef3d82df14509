package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRunbook = `# Troubleshooting

Known issues when deploying the STIG RAG service and how to fix them.

## Container fails to start on cgroups v1 hosts

### Symptoms

podman reports an OCI runtime error mentioning cgroups at container start.

### Cause

Rootless podman cannot manage cgroups on a cgroups v1 host.

### Resolution

Redeploy with stigragctl; it detects cgroups v1 and passes --cgroups=disabled.

### Verification

stigragctl status shows the container running.

## Volume mount denied by SELinux

### Symptoms

The service logs show permission denied reading /opt/stig-rag/data.

### Resolution

Redeploy with stigragctl; on enforcing hosts it relabels volume mounts with :Z.
`

func TestParse(t *testing.T) {
	runbook, err := Parse([]byte(validRunbook))
	require.NoError(t, err)

	assert.Equal(t, "Troubleshooting", runbook.Title)
	require.Len(t, runbook.Issues, 2)

	// Check first issue
	first := runbook.Issues[0]
	assert.Equal(t, "Container fails to start on cgroups v1 hosts", first.Title)
	assert.Len(t, first.Sections, 4)
	assert.Contains(t, first.Sections["Symptoms"], "OCI runtime error")
	assert.Contains(t, first.Sections["Resolution"], "--cgroups=disabled")

	// Check second issue
	second := runbook.Issues[1]
	assert.Equal(t, "Volume mount denied by SELinux", second.Title)
	assert.Len(t, second.Sections, 2)
	assert.Contains(t, second.Sections["Resolution"], ":Z")

	// Section bodies end at the next heading's line, not its text, so no
	// "#" markers bleed into the content.
	assert.Equal(t,
		"stigragctl status shows the container running.",
		first.Sections["Verification"])
	assert.Equal(t,
		"The service logs show permission denied reading /opt/stig-rag/data.",
		second.Sections["Symptoms"])
	for _, issue := range runbook.Issues {
		for name, body := range issue.Sections {
			assert.NotContains(t, body, "#", "section %s of %q", name, issue.Title)
		}
	}
}

func TestFindIssue(t *testing.T) {
	runbook, err := Parse([]byte(validRunbook))
	require.NoError(t, err)

	t.Run("matches by substring, case-insensitively", func(t *testing.T) {
		issue := runbook.FindIssue("selinux")
		require.NotNil(t, issue)
		assert.Equal(t, "Volume mount denied by SELinux", issue.Title)
	})

	t.Run("returns nil for unknown issues", func(t *testing.T) {
		assert.Nil(t, runbook.FindIssue("kernel panic"))
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid runbook passes", func(t *testing.T) {
		result := Validate([]byte(validRunbook))
		assert.True(t, result.IsValid(), "errors: %v", result.Errors)
	})

	t.Run("missing title", func(t *testing.T) {
		source := strings.Replace(validRunbook, "# Troubleshooting\n", "", 1)
		result := Validate([]byte(source))
		require.False(t, result.IsValid())
		assertHasError(t, result, "Missing runbook title")
	})

	t.Run("title without Troubleshooting", func(t *testing.T) {
		source := strings.Replace(validRunbook, "# Troubleshooting", "# Known Issues", 1)
		result := Validate([]byte(source))
		require.False(t, result.IsValid())
		assertHasError(t, result, "Title should contain 'Troubleshooting'")
	})

	t.Run("missing Resolution section", func(t *testing.T) {
		source := strings.Replace(validRunbook,
			"### Resolution\n\nRedeploy with stigragctl; on enforcing hosts it relabels volume mounts with :Z.\n", "", 1)
		result := Validate([]byte(source))
		require.False(t, result.IsValid())
		assertHasError(t, result, "missing a Resolution section")
	})

	t.Run("empty Symptoms section", func(t *testing.T) {
		source := strings.Replace(validRunbook,
			"The service logs show permission denied reading /opt/stig-rag/data.\n", "", 1)
		result := Validate([]byte(source))
		require.False(t, result.IsValid())
		assertHasError(t, result, "empty Symptoms section")
	})

	t.Run("invalid section name", func(t *testing.T) {
		source := strings.Replace(validRunbook, "### Cause", "### Workaround", 1)
		result := Validate([]byte(source))
		require.False(t, result.IsValid())
		assertHasError(t, result, "Invalid section 'Workaround'")
	})

	t.Run("duplicate issue titles", func(t *testing.T) {
		source := validRunbook + `
## Volume mount denied by SELinux

### Symptoms

Same again.

### Resolution

Same again.
`
		result := Validate([]byte(source))
		require.False(t, result.IsValid())
		assertHasError(t, result, "Duplicate issue title")
	})

	t.Run("no issues at all", func(t *testing.T) {
		result := Validate([]byte("# Troubleshooting\n\nNothing here yet.\n"))
		require.False(t, result.IsValid())
		assertHasError(t, result, "no issue sections")
	})
}

func assertHasError(t *testing.T, result *ValidationResult, substring string) {
	t.Helper()
	for _, e := range result.Errors {
		if strings.Contains(e.Message, substring) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got %v", substring, result.Errors)
}
