// Package model defines the STIG control record types exchanged with the
// RAG service and written by the data tooling.
//
// A Document is one published STIG release (e.g. RHEL-9-STIG-V1R3) holding
// a list of Controls. Controls carry the check and fix text the service
// indexes; the deployment tooling only reads and writes them as JSON.
package model
