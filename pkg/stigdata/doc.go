// Package stigdata prepares STIG documents for ingestion: bundled sample
// control sets for testing a fresh deployment, and download/extract
// helpers for the DISA-published XCCDF archives.
package stigdata
