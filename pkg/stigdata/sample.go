package stigdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/model"
)

// SampleDocuments returns the bundled sample STIG control sets, RHEL 9
// first. They are small but real control texts, enough to validate a
// deployment end to end before loading full DISA releases.
func SampleDocuments() []model.Document {
	return []model.Document{
		{
			Version:     "RHEL-9-STIG-V1R3",
			ReleaseDate: "2024-01-01",
			RHELVersion: "9",
			Priority:    1,
			Controls: []model.Control{
				{
					ID:          "RHEL-09-211010",
					Title:       "RHEL 9 must be configured to verify the signature of packages",
					Severity:    model.SeverityHigh,
					Version:     "9",
					Description: "Changes to any software components can have significant effects on the overall security of the operating system. This requirement ensures the software has not been tampered with and that it has been provided by a trusted vendor.",
					Check:       "Verify Red Hat GPG signature checking is configured with the following command: $ sudo grep gpgcheck /etc/dnf/dnf.conf. gpgcheck=1. If \"gpgcheck\" is not set to \"1\", this is a finding.",
					Fix:         "Configure Red Hat package signature checking by editing \"/etc/dnf/dnf.conf\" and ensure the following line appears: gpgcheck=1",
					References:  []string{"CCI-001749"},
					Category:    "Package Management",
				},
				{
					ID:          "RHEL-09-211015",
					Title:       "RHEL 9 must have the gpgcheck enabled for all repositories",
					Severity:    model.SeverityHigh,
					Version:     "9",
					Description: "Changes to any software components can have significant effects on the overall security of the operating system. This requirement ensures the software has not been tampered with and that it has been provided by a trusted vendor.",
					Check:       "Verify that gpgcheck is enabled for all repositories in \"/etc/yum.repos.d/\". Check all repository files with: $ sudo grep -r gpgcheck /etc/yum.repos.d/",
					Fix:         "Edit each repository file in \"/etc/yum.repos.d/\" and ensure \"gpgcheck=1\" is set for all repositories.",
					References:  []string{"CCI-001749"},
					Category:    "Package Management",
				},
				{
					ID:          "RHEL-09-212010",
					Title:       "RHEL 9 must enable kernel lockdown",
					Severity:    model.SeverityMedium,
					Version:     "9",
					Description: "Kernel lockdown restricts access to kernel features that may allow arbitrary code execution via kernel modules loading.",
					Check:       "Check that kernel lockdown is enabled with: $ sudo cat /sys/kernel/security/lockdown. The output should show either 'integrity' or 'confidentiality'.",
					Fix:         "Configure the system to boot with kernel lockdown enabled by adding 'lockdown=integrity' or 'lockdown=confidentiality' to the kernel command line.",
					References:  []string{"CCI-000381"},
					Category:    "System Settings",
				},
				{
					ID:          "RHEL-09-671010",
					Title:       "RHEL 9 must configure SELinux context type to allow the use of a non-default faillock tally directory",
					Severity:    model.SeverityMedium,
					Version:     "9",
					Description: "By limiting the number of failed logon attempts, the risk of unauthorized system access via user password guessing is reduced.",
					Check:       "Verify the location of the non-default faillock tally directory with: $ sudo grep tally_dir /etc/security/faillock.conf",
					Fix:         "Configure the faillock tally directory and set appropriate SELinux context.",
					References:  []string{"CCI-000044"},
					Category:    "Authentication",
				},
			},
		},
		{
			Version:     "RHEL-8-STIG-V1R12",
			ReleaseDate: "2023-01-01",
			RHELVersion: "8",
			Priority:    2,
			Controls: []model.Control{
				{
					ID:          "RHEL-08-010010",
					Title:       "RHEL 8 must be configured to verify the signature of packages",
					Severity:    model.SeverityHigh,
					Version:     "8",
					Description: "Changes to any software components can have significant effects on the overall security of the operating system.",
					Check:       "Verify Red Hat GPG signature checking is configured with: $ sudo grep gpgcheck /etc/yum.conf",
					Fix:         "Configure Red Hat package signature checking by editing /etc/yum.conf and ensure: gpgcheck=1",
					References:  []string{"CCI-001749"},
					Category:    "Package Management",
				},
				{
					ID:          "RHEL-08-010020",
					Title:       "RHEL 8 must have the gpgcheck enabled for all repositories",
					Severity:    model.SeverityHigh,
					Version:     "8",
					Description: "Changes to any software components can have significant effects on the overall security of the operating system.",
					Check:       "Verify that gpgcheck is enabled for all repositories in /etc/yum.repos.d/",
					Fix:         "Edit each repository file in /etc/yum.repos.d/ and ensure gpgcheck=1",
					References:  []string{"CCI-001749"},
					Category:    "Package Management",
				},
			},
		},
	}
}

// SampleFileName returns the file name a sample document is written as.
func SampleFileName(doc model.Document) string {
	return fmt.Sprintf("sample_rhel%s_stig.json", doc.RHELVersion)
}

// WriteSamples writes the sample documents into dir and returns the paths
// written, RHEL 9 first.
func WriteSamples(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var paths []string
	for _, doc := range SampleDocuments() {
		path := filepath.Join(dir, SampleFileName(doc))
		if err := model.WriteDocument(path, doc); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
