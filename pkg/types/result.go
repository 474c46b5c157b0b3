// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-collector-interface R3;
//
//	docs/ARCHITECTURE § Collector Results.
package types

import "fmt"

// Status is the overall outcome of a collector or a whole run.
type Status int

const (
	StatusComplete Status = iota // All inputs processed
	StatusPartial                // Some inputs skipped or a source absent
	StatusFailed                 // No usable output produced
)

// String returns the human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the status for JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Severity grades a diagnostic.
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

// String returns the human-readable name of the severity.
func (s Severity) String() string {
	if s == SevError {
		return "error"
	}
	return "warning"
}

// MarshalText renders the severity for JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a non-fatal per-file or per-commit problem attached to a
// collector result. Diagnostics never abort a collector; they let a
// consumer render "graph is missing history data" instead of failing.
//
// Implements: prd001-collector-interface R3.2, R3.3.
type Diagnostic struct {
	Path     string   `json:"path,omitempty"` // File or commit the problem relates to
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// String renders the diagnostic as "path: message".
func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Path, d.Message)
}
