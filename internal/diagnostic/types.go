package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"form-binder/internal/common"
)

// Diagnostics holds the messages collected by one layout load or binder.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single message.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of problem, e.g. "unknown_processor".
	Code    string
	Message string
	// FieldPath is the field or layout element the message is about.
	FieldPath string
	// Suggestions are close known names for misspelled references.
	Suggestions []string
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends a diagnostic with the given severity.
func (d *Diagnostics) Add(sev Severity, code, fieldPath, message string, suggestions ...string) {
	diag := Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, fieldPath, message string, suggestions ...string) {
	d.Add(SeverityError, code, fieldPath, message, suggestions...)
}

func (d *Diagnostics) AddWarning(code, fieldPath, message string, suggestions ...string) {
	d.Add(SeverityWarning, code, fieldPath, message, suggestions...)
}

func (d *Diagnostics) AddInfo(code, fieldPath, message string, suggestions ...string) {
	d.Add(SeverityInfo, code, fieldPath, message, suggestions...)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len counts diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Clone returns a copy that shares no slices with d.
func (d *Diagnostics) Clone() Diagnostics {
	return Diagnostics{
		Errors:   append([]Diagnostic(nil), d.Errors...),
		Warnings: append([]Diagnostic(nil), d.Warnings...),
		Infos:    append([]Diagnostic(nil), d.Infos...),
	}
}

// Error returns a combined error from all error diagnostics, or nil if there
// are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "path: [code] message (did you mean a, b?)".
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if d.FieldPath != "" {
		return d.FieldPath + ": " + msg
	}

	return msg
}
