// Package sheeterr implements the structural error taxonomy (spec.md §7),
// adapted from the teacher's AppError/AppErrorCode pair in sheet.go.
// Arithmetic failures are deliberately not represented here: spec.md is
// explicit that ArithError is data carried by cellvalue.CellValue, never
// an exception.
package sheeterr

import "fmt"

// Code enumerates the structural-error kinds that can be raised from
// Sheet's edit entry points.
type Code uint8

const (
	// InvalidPosition: row/col out of [0, MAX).
	InvalidPosition Code = iota
	// CircularDependency: the proposed edit would cycle the reference graph.
	CircularDependency
	// FormulaParseError: formula text is syntactically invalid.
	FormulaParseError
)

func (c Code) String() string {
	switch c {
	case InvalidPosition:
		return "InvalidPosition"
	case CircularDependency:
		return "CircularDependency"
	case FormulaParseError:
		return "FormulaParseError"
	default:
		return "Unknown"
	}
}

// Error is the structural error type returned by Sheet operations.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err carries the given code, for use with errors.Is.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}
