// Package diagnostic collects non-fatal findings reported while generating types: object
// definitions without properties, definitions skipped because their names cannot be placed
// in the output layout, and definitions replaced by a fixed type expression.
package diagnostic

import (
	"fmt"
	"strings"
)

// Codes of the diagnostics the generator reports
const (
	CodeMissingProperties  = "missing-properties"
	CodeExcludedDefinition = "excluded-definition"
	CodeReplacedDefinition = "replaced-definition"
)

// Severity of a Diagnostic
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding
	Code    string
	Message string
	// Definition is the qualified schema name the finding is about
	Definition string
	// Path is the output module the definition maps to, when it has one
	Path string
}

// String returns a formatted diagnostic string
func (d Diagnostic) String() string {
	var prefix []string
	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}
	if d.Definition != "" {
		prefix = append(prefix, d.Definition)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}
	return msg
}

// Diagnostics holds the findings of one generation run
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddWarning adds a warning diagnostic
func (d *Diagnostics) AddWarning(code, message, definition, path string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:   SeverityWarning,
		Code:       code,
		Message:    message,
		Definition: definition,
		Path:       path,
	})
}

// AddInfo adds an info diagnostic
func (d *Diagnostics) AddInfo(code, message, definition, path string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:   SeverityInfo,
		Code:       code,
		Message:    message,
		Definition: definition,
		Path:       path,
	})
}

// Merge appends another collection's findings
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Len returns the total number of findings
func (d *Diagnostics) Len() int {
	return len(d.Warnings) + len(d.Infos)
}

// HasWarnings reports whether any warning was recorded
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// All returns warnings followed by infos
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Warnings...)
	return append(all, d.Infos...)
}
