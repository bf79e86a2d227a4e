package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so callers can branch on it
// without string matching.
type Kind uint8

const (
	// Validation means an invariant was violated before any mutation.
	Validation Kind = iota + 1
	// NotFound means a referenced aggregate id does not exist.
	NotFound
	// Conflict means a state-dependent rule failed given current data
	// (insufficient stock, currency mismatch, concurrent update).
	Conflict
	// Authentication means a credential check failed. The message is
	// deliberately identical for unknown email and wrong password.
	Authentication
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Authentication:
		return "authentication"
	}
	return "unknown"
}

// Error is a domain failure tagged with a Kind. It survives
// fmt.Errorf("%w") wrapping, so the application layer can add
// operation context without losing the kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain,
// or 0 when the error is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func IsValidation(err error) bool     { return KindOf(err) == Validation }
func IsNotFound(err error) bool       { return KindOf(err) == NotFound }
func IsConflict(err error) bool       { return KindOf(err) == Conflict }
func IsAuthentication(err error) bool { return KindOf(err) == Authentication }
