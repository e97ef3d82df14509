package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is one published STIG release and its control set. The JSON
// layout matches the files the service accepts on /load-stig.
type Document struct {
	Version     string    `json:"version" yaml:"version"`
	ReleaseDate string    `json:"release_date" yaml:"release_date"`
	RHELVersion string    `json:"rhel_version" yaml:"rhel_version"`
	Priority    int       `json:"priority" yaml:"priority"`
	Controls    []Control `json:"controls" yaml:"controls"`
}

// Validate checks the document header and every control.
func (d Document) Validate() error {
	if d.Version == "" {
		return fmt.Errorf("document is missing a version label")
	}
	if d.RHELVersion != "8" && d.RHELVersion != "9" {
		return fmt.Errorf("document %s has unsupported RHEL version %q", d.Version, d.RHELVersion)
	}
	if len(d.Controls) == 0 {
		return fmt.Errorf("document %s has no controls", d.Version)
	}
	for _, c := range d.Controls {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("document %s: %w", d.Version, err)
		}
	}
	return nil
}

// ReadDocument loads and validates a STIG document from a JSON file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read STIG document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse STIG document %s: %w", path, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteDocument writes the document as indented JSON, the format the
// service's /load-stig endpoint ingests.
func WriteDocument(path string, doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode STIG document: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write STIG document: %w", err)
	}
	return nil
}
