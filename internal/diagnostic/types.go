package diagnostic

import "fmt"

// Diagnostics holds all non-fatal findings from a generation run.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record is the qualified record name this relates to (if any).
	Record string
	// Field is the field name this relates to (if any).
	Field string
	// Line is the 1-based schema line (0 when unknown).
	Line int
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
)

const unknownStr = "unknown"

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	default:
		return unknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record, field string, line int) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
		Line:     line,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, record, field string, line int) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
		Line:     line,
	})
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if prefix := location(d.Record, d.Field, d.Line); prefix != "" {
		return prefix + ": " + msg
	}

	return msg
}

// location renders "Record.field (line N)", omitting unknown parts.
func location(record, field string, line int) string {
	loc := record
	if field != "" {
		if loc != "" {
			loc += "."
		}

		loc += field
	}

	if line > 0 {
		if loc != "" {
			loc += " "
		}

		loc += fmt.Sprintf("(line %d)", line)
	}

	return loc
}
