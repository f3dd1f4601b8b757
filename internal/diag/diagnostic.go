package diag

import (
	"fstrify/internal/source"
)

// Severity ranks a diagnostic: informational site reports, warnings, and
// hard syntax errors.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{"INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single span replacement over the original file bytes.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction: a title plus the edits that realise it.
type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
