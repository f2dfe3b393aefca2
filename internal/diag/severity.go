package diag

import (
	"fmt"
	"strings"
)

// Severity grades a diagnostic. A {@code} block the host formatter
// rejected is a warning: the comment is still rewritten around it. A doc
// comment the scanner cannot read is an error and leaves its file as is.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity reads a --min-severity value, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("invalid severity %q (expected: info|warning|error)", s)
}

// AtLeast keeps the diagnostics of severity floor or worse, in order.
func AtLeast(ds []*Diagnostic, floor Severity) []*Diagnostic {
	out := ds[:0:0]
	for _, d := range ds {
		if d.Severity >= floor {
			out = append(out, d)
		}
	}
	return out
}
