package goeda

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	KindFileNotFound      ErrorKind = "FILE_NOT_FOUND"
	KindColumnNotFound    ErrorKind = "COLUMN_NOT_FOUND"
	KindNonNumericColumn  ErrorKind = "NON_NUMERIC_COLUMN"
	KindEmptyData         ErrorKind = "EMPTY_DATA"
	KindInsufficientData  ErrorKind = "INSUFFICIENT_DATA"
	KindRemoteFetchFailed ErrorKind = "REMOTE_FETCH_FAILED"
	KindInvalidArgument   ErrorKind = "INVALID_ARGUMENT"
	KindMissingValues     ErrorKind = "MISSING_VALUES"
	KindNoTable           ErrorKind = "NO_TABLE"
)

var kindText = map[ErrorKind]string{
	KindFileNotFound:      "file not found",
	KindColumnNotFound:    "column not found",
	KindNonNumericColumn:  "column is not numeric",
	KindEmptyData:         "not enough data",
	KindInsufficientData:  "insufficient data",
	KindRemoteFetchFailed: "remote fetch failed",
	KindInvalidArgument:   "invalid argument",
	KindMissingValues:     "series has missing values",
	KindNoTable:           "no table loaded",
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrFileNotFound      = &Error{Kind: KindFileNotFound}
	ErrColumnNotFound    = &Error{Kind: KindColumnNotFound}
	ErrNonNumericColumn  = &Error{Kind: KindNonNumericColumn}
	ErrEmptyData         = &Error{Kind: KindEmptyData}
	ErrInsufficientData  = &Error{Kind: KindInsufficientData}
	ErrRemoteFetchFailed = &Error{Kind: KindRemoteFetchFailed}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrMissingValues     = &Error{Kind: KindMissingValues}
	ErrNoTable           = &Error{Kind: KindNoTable}
)

// Error describes an operation that could not complete.
type Error struct {
	Kind   ErrorKind
	Op     string // operation attempted, e.g. "returns"
	Column string // column involved, if any
	Detail string // extra explanation
	Cause  error
}

// NewError creates an error of the given kind for op.
func NewError(kind ErrorKind, op, column string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Column: column, Cause: cause}
}

// Errorf creates an error of the given kind with a formatted detail.
func Errorf(kind ErrorKind, op, column string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Column: column, Detail: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Column != "" {
		fmt.Fprintf(&b, "column %q: ", e.Column)
	}
	if text, ok := kindText[e.Kind]; ok {
		b.WriteString(text)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Column == "" && t.Cause == nil
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
