// Package dterr defines the error kinds reported by dt's parsing and
// calendar operations.
package dterr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a failed operation.
type Kind string

const (
	UnparseableDatetime    Kind = "unparseable_datetime"
	InvalidSpan            Kind = "invalid_span"
	UnknownUnit            Kind = "unknown_unit"
	ConflictingUnitOptions Kind = "conflicting_unit_options"
	DateOverflow           Kind = "date_overflow"
	InvalidCalendarField   Kind = "invalid_calendar_field"
)

// Error is the error type returned by every core operation.
type Error struct {
	Kind Kind
	// Input is the offending input: the original string, the unit alias,
	// the calendar field, or the operation that overflowed.
	Input   string
	Message string
	// Help is optional remediation shown after the message.
	Help  string
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if e.Help != "" {
		b.WriteString(" (")
		b.WriteString(e.Help)
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// Unparseable reports that no resolver strategy accepted input.
func Unparseable(input string, attempted []string) *Error {
	return &Error{
		Kind:    UnparseableDatetime,
		Input:   input,
		Message: fmt.Sprintf("could not parse %q as a date or datetime", input),
		Help:    "tried " + strings.Join(attempted, ", "),
	}
}

// Span reports an invalid span expression. offending is the substring that
// failed to parse.
func Span(input, offending, reason string) *Error {
	msg := fmt.Sprintf("invalid span %q: %s", input, reason)
	if offending != "" && offending != input {
		msg = fmt.Sprintf("invalid span %q: %s at %q", input, reason, offending)
	}
	return &Error{
		Kind:    InvalidSpan,
		Input:   input,
		Message: msg,
		Help:    "valid units are y, m, w, d before T and h, m, s after it, e.g. P1y2m3dT4h5m6.5s",
	}
}

// Unit reports an alias missing from the unit registry.
func Unit(input string) *Error {
	return &Error{
		Kind:    UnknownUnit,
		Input:   input,
		Message: fmt.Sprintf("unknown unit %q", input),
		Help:    "see dt units for the list of unit names and abbreviations",
	}
}

// Conflicting reports that a single output unit was requested together with
// explicit smallest or largest bounds.
func Conflicting() *Error {
	return &Error{
		Kind:    ConflictingUnitOptions,
		Message: "--as cannot be combined with --smallest or --largest",
	}
}

// Overflow reports that op produced a value outside the supported range.
func Overflow(op string, cause error) *Error {
	return &Error{
		Kind:    DateOverflow,
		Input:   op,
		Message: fmt.Sprintf("%s is outside the supported range of years -9999 to 9999", op),
		Cause:   cause,
	}
}

// OverflowLimit reports that op went past limit, a bound narrower than the
// supported year range.
func OverflowLimit(op, limit string) *Error {
	return &Error{
		Kind:    DateOverflow,
		Input:   op,
		Message: fmt.Sprintf("%s exceeds %s", op, limit),
	}
}

// Field reports a calendar field value that is out of range.
func Field(field string, value int) *Error {
	return &Error{
		Kind:    InvalidCalendarField,
		Input:   field,
		Message: fmt.Sprintf("invalid %s %d", field, value),
	}
}
