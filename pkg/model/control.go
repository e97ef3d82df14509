package model

import (
	"fmt"
	"regexp"
	"strings"
)

// stigIDRgx matches DISA-style control identifiers such as RHEL-09-211010.
var stigIDRgx = regexp.MustCompile(`RHEL-\d+-\d+`)

// Control is a single STIG control record as exchanged with the service.
type Control struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description" yaml:"description"`
	Check       string   `json:"check" yaml:"check"`
	Fix         string   `json:"fix" yaml:"fix"`
	References  []string `json:"references,omitempty" yaml:"references,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// Validate checks the fields the service requires on ingestion.
func (c Control) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("control is missing an id")
	}
	if c.Title == "" {
		return fmt.Errorf("control %s is missing a title", c.ID)
	}
	if c.Version != "" && c.Version != "8" && c.Version != "9" {
		return fmt.Errorf("control %s has unsupported RHEL version %q", c.ID, c.Version)
	}
	return nil
}

// RHELVersion returns the RHEL major version the control targets, inferred
// from the explicit Version field or from the control ID. Empty when the
// version cannot be determined.
func (c Control) RHELVersion() string {
	if c.Version != "" {
		return c.Version
	}
	return VersionFromStigID(c.ID)
}

// Priority orders controls for retrieval: RHEL 9 first, then RHEL 8, then
// anything without a recognizable version.
func (c Control) Priority() int {
	switch c.RHELVersion() {
	case "9":
		return 1
	case "8":
		return 2
	default:
		return 3
	}
}

// Text renders the control in the flattened form the service indexes.
func (c Control) Text() string {
	return strings.TrimSpace(fmt.Sprintf(`STIG ID: %s
Title: %s
Severity: %s

Description:
%s

Check Procedure:
%s

Fix/Implementation:
%s`, c.ID, c.Title, c.Severity, c.Description, c.Check, c.Fix))
}

// VersionFromStigID infers the RHEL major version from a control ID,
// e.g. RHEL-09-211010 -> "9". Returns "" for unrecognized IDs.
func VersionFromStigID(id string) string {
	upper := strings.ToUpper(id)
	switch {
	case strings.Contains(upper, "RHEL-09"):
		return "9"
	case strings.Contains(upper, "RHEL-08"):
		return "8"
	}
	return ""
}

// ExtractStigID finds the first STIG control identifier embedded in free
// text, e.g. a question like "how do I fix RHEL-09-211010?".
func ExtractStigID(text string) string {
	return stigIDRgx.FindString(strings.ToUpper(text))
}
