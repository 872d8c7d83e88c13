// Package cdserrors defines the error taxonomy shared by every core
// package: InvalidInput, OutOfRange, NumericalError, and Inconsistent.
//
// Call sites construct one of these via New or Wrap, which prefix the
// message with the function name the way swap/common.go prefixes every
// error; errors.Is against the exported sentinels lets callers
// branch on the taxonomy without parsing strings.
package cdserrors

import "errors"

// Kind classifies a failure into the core's error taxonomy.
type Kind int

const (
	InvalidInput Kind = iota
	OutOfRange
	NumericalError
	Inconsistent
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case OutOfRange:
		return "OutOfRange"
	case NumericalError:
		return "NumericalError"
	case Inconsistent:
		return "Inconsistent"
	default:
		return "Unknown"
	}
}

// Sentinels usable with errors.Is. A *Error constructed via New always
// wraps the sentinel matching its Kind.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrOutOfRange     = errors.New("out of range")
	ErrNumericalError = errors.New("numerical error")
	ErrInconsistent   = errors.New("inconsistent")
)

func sentinel(k Kind) error {
	switch k {
	case InvalidInput:
		return ErrInvalidInput
	case OutOfRange:
		return ErrOutOfRange
	case NumericalError:
		return ErrNumericalError
	case Inconsistent:
		return ErrInconsistent
	default:
		return ErrInvalidInput
	}
}

// Error is a typed, wrappable failure. Op names the failing function
// ("Bootstrap", "Curve.DiscountFactor", ...), matching the
// "FuncName: detail" prefix convention used throughout swap/common.go.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return sentinel(e.Kind)
}

// New constructs an Error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap constructs an Error of the given kind around an underlying cause.
func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}
