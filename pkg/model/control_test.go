package model

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestVersionFromStigID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{name: "rhel 9 control", id: "RHEL-09-211010", expected: "9"},
		{name: "rhel 8 control", id: "RHEL-08-010010", expected: "8"},
		{name: "lowercase id", id: "rhel-09-671010", expected: "9"},
		{name: "unrelated id", id: "UBTU-20-010000", expected: ""},
		{name: "empty id", id: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VersionFromStigID(tt.id); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExtractStigID(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "id embedded in question",
			text:     "how do I implement RHEL-09-211010 on my hosts?",
			expected: "RHEL-09-211010",
		},
		{
			name:     "lowercase id",
			text:     "what about rhel-08-010020?",
			expected: "RHEL-08-010020",
		},
		{
			name:     "no id present",
			text:     "how do I disable root ssh login?",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractStigID(tt.text); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestControlPriority(t *testing.T) {
	tests := []struct {
		name     string
		control  Control
		expected int
	}{
		{name: "explicit rhel 9", control: Control{ID: "X", Version: "9"}, expected: 1},
		{name: "explicit rhel 8", control: Control{ID: "X", Version: "8"}, expected: 2},
		{name: "inferred from id", control: Control{ID: "RHEL-09-212010"}, expected: 1},
		{name: "unknown version", control: Control{ID: "SOME-00-000000"}, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.control.Priority(); got != tt.expected {
				t.Errorf("expected priority %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	raw := []byte(`{"id":"RHEL-09-211010","title":"t","severity":"high","version":"9"}`)

	var c Control
	if err := json.Unmarshal(raw, &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.Severity != SeverityHigh {
		t.Errorf("expected SeverityHigh, got %v", c.Severity)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if decoded["severity"] != "high" {
		t.Errorf("expected severity to marshal as \"high\", got %v", decoded["severity"])
	}
}

func TestSeverityRejectsUnknownValue(t *testing.T) {
	var c Control
	err := json.Unmarshal([]byte(`{"id":"X","severity":"catastrophic"}`), &c)
	if err == nil {
		t.Fatal("expected error for unknown severity")
	}
}

func TestDocumentValidate(t *testing.T) {
	valid := Document{
		Version:     "RHEL-9-STIG-V1R3",
		ReleaseDate: "2024-01-01",
		RHELVersion: "9",
		Priority:    1,
		Controls: []Control{
			{ID: "RHEL-09-211010", Title: "gpgcheck", Severity: SeverityHigh, Version: "9"},
		},
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid document, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{name: "missing version label", mutate: func(d *Document) { d.Version = "" }},
		{name: "bad rhel version", mutate: func(d *Document) { d.RHELVersion = "7" }},
		{name: "no controls", mutate: func(d *Document) { d.Controls = nil }},
		{name: "control missing title", mutate: func(d *Document) { d.Controls[0].Title = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid
			doc.Controls = append([]Control{}, valid.Controls...)
			tt.mutate(&doc)
			if err := doc.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	doc := Document{
		Version:     "RHEL-9-STIG-V1R3",
		ReleaseDate: "2024-01-01",
		RHELVersion: "9",
		Priority:    1,
		Controls: []Control{
			{
				ID:         "RHEL-09-211010",
				Title:      "RHEL 9 must be configured to verify the signature of packages",
				Severity:   SeverityHigh,
				Version:    "9",
				Check:      "grep gpgcheck /etc/dnf/dnf.conf",
				Fix:        "Set gpgcheck=1 in /etc/dnf/dnf.conf",
				References: []string{"CCI-001749"},
				Category:   "Package Management",
			},
		},
	}

	path := filepath.Join(t.TempDir(), "sample.json")
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if got.Version != doc.Version || len(got.Controls) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Controls[0].Severity != SeverityHigh {
		t.Errorf("expected severity high, got %v", got.Controls[0].Severity)
	}
}
