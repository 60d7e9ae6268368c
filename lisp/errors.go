package lisp

import (
	"errors"
	"fmt"
)

type ErrorKind uint8

const (
	ReferenceError ErrorKind = iota
	TypeError
	ArityError
	SyntaxError
	UserError
	ExpansionError
)

func (k ErrorKind) String() string {
	switch k {
	case ReferenceError:
		return "ReferenceError"
	case TypeError:
		return "TypeError"
	case ArityError:
		return "ArityError"
	case SyntaxError:
		return "SyntaxError"
	case UserError:
		return "Error"
	case ExpansionError:
		return "ExpansionError"
	}
	return "UnknownError"
}

// Error is returned for every failure raised while reading or evaluating.
type Error struct {
	Kind ErrorKind
	Msg  string
	// wrapped is set for incomplete input
	wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func referenceErrorf(format string, args ...any) error {
	return newError(ReferenceError, format, args...)
}

func typeErrorf(format string, args ...any) error {
	return newError(TypeError, format, args...)
}

func arityErrorf(format string, args ...any) error {
	return newError(ArityError, format, args...)
}

func syntaxErrorf(format string, args ...any) error {
	return newError(SyntaxError, format, args...)
}

// ErrIncomplete is wrapped by reader errors caused by input that ended
// in the middle of an expression.
var ErrIncomplete = errors.New("unexpected end of input")

func incompletef(format string, args ...any) error {
	e := newError(SyntaxError, format, args...)
	e.wrapped = ErrIncomplete
	return e
}

// IsIncomplete reports whether more input could complete the expression.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// KindOf returns the kind of a lisp error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return 0, false
	}
	return lerr.Kind, true
}

// ExitError is returned when a program calls exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
