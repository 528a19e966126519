package thethacore

import (
	"fmt"

	"gopkg.in/warnings.v0"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// ErrorSyntax is a line matching neither the section-header nor the
	// key-value shape.
	ErrorSyntax ErrorKind = iota
	// ErrorOutsideSection is a key-value line before any section header.
	ErrorOutsideSection
	// ErrorSectionMissing is an insertion into a section path that was
	// never opened. Headers always initialize their section, so this is
	// an internal consistency failure rather than a user mistake.
	ErrorSectionMissing
	// ErrorValue is a value token that does not decode: no shape matches,
	// a nested element fails, an object pair is malformed, or nesting
	// exceeds the depth bound.
	ErrorValue
	// ErrorSource is a failure to read the source file.
	ErrorSource
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorSyntax:
		return "syntax"
	case ErrorOutsideSection:
		return "outside section"
	case ErrorSectionMissing:
		return "section missing"
	case ErrorValue:
		return "value"
	case ErrorSource:
		return "source"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is a terminal parse failure. The message is presentation
// only; callers that need to react to specifics should use the fields.
type ParseError struct {
	// Line is the 1-based line number where the anomaly was detected.
	// Failures inside nested array/object elements carry the line of the
	// enclosing key-value pair. Zero for source errors.
	Line int
	Kind ErrorKind
	// Text is the offending trimmed line, value token, or file path.
	Text string
	// Err is the underlying cause, if any (source errors).
	Err error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrorSyntax:
		return fmt.Sprintf("syntax error on line %d: %q", e.Line, e.Text)
	case ErrorOutsideSection:
		return fmt.Sprintf("error on line %d: key-value pair found outside of a section", e.Line)
	case ErrorSectionMissing:
		return fmt.Sprintf("error on line %d: section %q not initialized", e.Line, e.Text)
	case ErrorValue:
		if e.Err != nil {
			return fmt.Sprintf("syntax error on line %d: %v: %q", e.Line, e.Err, e.Text)
		}
		return fmt.Sprintf("syntax error on line %d: unable to parse value %q", e.Line, e.Text)
	case ErrorSource:
		return fmt.Sprintf("cannot read %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("error on line %d: %q", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// valueError builds an ErrorValue ParseError for token at line.
func valueError(line int, token string) *ParseError {
	return &ParseError{Line: line, Kind: ErrorValue, Text: token}
}

// FatalOnly returns the fatal part of err, dropping the non-fatal
// warnings that ReadInto collects for data without a destination field.
// It returns nil if err contains only warnings.
func FatalOnly(err error) error {
	return warnings.FatalOnly(err)
}

func isFatal(err error) bool {
	_, ok := err.(extraData)
	return !ok
}

// extraData is the non-fatal error reported when a parsed section or
// variable has no destination field in the config struct.
type extraData struct {
	section  string
	variable *string
}

func (e extraData) Error() string {
	s := "can't store data at section \"" + e.section + "\""
	if e.variable != nil {
		s += ", variable \"" + *e.variable + "\""
	}
	return s
}

var _ error = extraData{}
