package diagnostic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"binop-generator/internal/binop"
	"binop-generator/internal/common"
	"binop-generator/internal/token"
)

// Diagnostic codes.
const (
	CodeGrammar  = "E-GRAMMAR"
	CodeOption   = "E-OPTION"
	CodeInternal = "E-INTERNAL"
	CodeLex      = "E-LEX"
	CodeOutput   = "E-OUTPUT"
	CodeNoop     = "W-NOOP"
	CodeExpanded = "I-EXPANDED"
)

// Diagnostics holds all diagnostic information from processing.
type Diagnostics struct {
	Errors   []Diagnostic
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
	// File is the source file this relates to (if any).
	File string
	// Pos locates the diagnostic within File (if valid).
	Pos token.Pos
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, file string, pos token.Pos) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		File:     file,
		Pos:      pos,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, file string, pos token.Pos) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		File:     file,
		Pos:      pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, file string, pos token.Pos) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		File:     file,
		Pos:      pos,
	})
}

// AddErr classifies err and adds one error diagnostic per error it holds.
func (d *Diagnostics) AddErr(file string, err error) {
	for _, e := range multierr.Errors(err) {
		d.Errors = append(d.Errors, FromError(file, e))
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// All returns every diagnostic ordered by file and position, errors first
// on ties.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.File != b.File {
			return a.File < b.File
		}

		if a.Pos.Offset != b.Pos.Offset {
			return a.Pos.Offset < b.Pos.Offset
		}

		return a.Severity > b.Severity
	})

	return all
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.File != "" {
		prefix = append(prefix, d.File)
	}

	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String())
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, msg)
	}

	for _, s := range d.Suggestions {
		msg += fmt.Sprintf(" (did you mean `%s`?)", s)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ":") + ": " + msg
	}

	return msg
}

// FromError classifies an error returned by the lexer, parser or expander.
// Errors of other kinds become internal errors carrying their full text.
func FromError(file string, err error) Diagnostic {
	d := Diagnostic{Severity: DiagnosticError, Code: CodeInternal, Message: err.Error(), File: file}

	var (
		lexErr   *token.Error
		parseErr *binop.ParseError
		flagErr  *binop.FlagError
		invErr   *binop.InvariantError
	)

	switch {
	case errors.As(err, &lexErr):
		d.Code = CodeLex
		d.Message = lexErr.Msg
		d.Pos = lexErr.Pos

		if lexErr.File != "" {
			d.File = lexErr.File
		}
	case errors.As(err, &parseErr):
		d.Code = CodeGrammar
		d.Message = parseErr.Msg
		d.Pos = parseErr.Pos
	case errors.As(err, &flagErr):
		d.Code = CodeOption
		d.Message = flagErr.Msg
		d.Pos = flagErr.Pos

		if flagErr.Suggestion != "" {
			d.Suggestions = []string{flagErr.Suggestion}
		}
	case errors.As(err, &invErr):
		d.Message = invErr.Error()
	}

	return d
}
