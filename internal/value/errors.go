package value

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	UnboundVariable ErrorKind = "UnboundVariable"
	TypeMismatch    ErrorKind = "TypeMismatch"
	NotAPair        ErrorKind = "NotAPair"
	DuplicateKey    ErrorKind = "DuplicateKey"
	MalformedDict   ErrorKind = "MalformedDict"
	KeyNotFound     ErrorKind = "KeyNotFound"
	NotApplicable   ErrorKind = "NotApplicable"
	ArityMismatch   ErrorKind = "ArityMismatch"
	UnsupportedForm ErrorKind = "UnsupportedForm"
	EmptyProgram    ErrorKind = "EmptyProgram"
	ParseError      ErrorKind = "ParseError"
	RecursionLimit  ErrorKind = "RecursionLimit"
)

// Error is the failure variant of every evaluation result.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Errorf(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

var (
	ErrUnboundVariable = &Error{Kind: UnboundVariable}
	ErrTypeMismatch    = &Error{Kind: TypeMismatch}
	ErrNotAPair        = &Error{Kind: NotAPair}
	ErrDuplicateKey    = &Error{Kind: DuplicateKey}
	ErrMalformedDict   = &Error{Kind: MalformedDict}
	ErrKeyNotFound     = &Error{Kind: KeyNotFound}
	ErrNotApplicable   = &Error{Kind: NotApplicable}
	ErrArityMismatch   = &Error{Kind: ArityMismatch}
	ErrUnsupportedForm = &Error{Kind: UnsupportedForm}
	ErrEmptyProgram    = &Error{Kind: EmptyProgram}
	ErrParse           = &Error{Kind: ParseError}
	ErrRecursionLimit  = &Error{Kind: RecursionLimit}
)

// KindOf extracts the failure kind from err, or "" if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
