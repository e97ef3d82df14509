package model

//go:generate go run github.com/dmarkham/enumer -type Severity -trimprefix Severity -transform lower -json -yaml -output severity.gen.go

// Severity is the DISA category of a STIG control. CAT I maps to high,
// CAT II to medium, CAT III to low.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)
