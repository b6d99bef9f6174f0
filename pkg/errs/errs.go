// Package errs defines the error taxonomy shared by every stage of the
// patch-bundle engine: envelope parsing, hunk parsing, matching, repair,
// completion, application, and directive execution.
package errs

import "fmt"

// Kind identifies which branch of the taxonomy an error belongs to.
type Kind string

const (
	KindParseError     Kind = "ParseError"
	KindMalformedHunk  Kind = "MalformedHunk"
	KindNoMatch        Kind = "NoMatch"
	KindAmbiguousMatch Kind = "AmbiguousMatch"
	KindPathEscape     Kind = "PathEscape"
	KindIOError        Kind = "IOError"
	KindApplyFailed    Kind = "ApplyFailed"
)

// Error is a taxonomy-tagged error. Callers that only care about the
// message can treat it as a plain error; callers that need to branch on
// the taxonomy (the CLI's status report, in particular) use Kind().
type Error struct {
	kind    Kind
	message string
	wrapped error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{kind: kind, message: message, wrapped: err}
}

func (e *Error) Kind() string { return string(e.kind) }

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// KindOf extracts the taxonomy Kind from err, or "" if err does not carry
// one (e.g. a plain I/O error that wasn't routed through Wrap).
func KindOf(err error) string {
	var tagged interface{ Kind() string }
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Kind()
	}
	if ok := asKind(err, &tagged); ok {
		return tagged.Kind()
	}
	return ""
}

func asKind(err error, target *interface{ Kind() string }) bool {
	type kinder interface{ Kind() string }
	for err != nil {
		if k, ok := err.(kinder); ok {
			*target = k
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
